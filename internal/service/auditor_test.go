package service

import (
	"context"
	"strings"
	"testing"

	"ux_auditor/internal/domain/adaptors"
	"ux_auditor/internal/domain/models"
	pkgerrors "ux_auditor/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newTestAuditor(webClient *MockWebClient, gateway *MockModelGateway) *Auditor {
	return NewAuditor(quietLogger(), webClient, gateway, testAuditConfig())
}

func TestAuditor_HTMLHappyPath(t *testing.T) {
	webClient := new(MockWebClient)
	gateway := new(MockModelGateway)
	gateway.On("Complete", mock.Anything, mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "<img src='/logo.png'>") && strings.Contains(prompt, "AnalyzedTarget: Code Snippet")
	}), adaptors.AuditCompletion).Return(validResultJSON, nil).Once()

	req := &models.AuditRequest{Mode: models.ModeHTML, HTML: strPtr("<html><body><img src='/logo.png'></body></html>")}
	outcome, err := newTestAuditor(webClient, gateway).Audit(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, models.CodeSnippetTarget, outcome.AnalyzedTarget)
	assert.Equal(t, "<html><body><img src='/logo.png'></body></html>", outcome.SanitizedSnippet)
	assert.GreaterOrEqual(t, outcome.Result.OverallScore, 0)
	assert.LessOrEqual(t, outcome.Result.OverallScore, 100)
	assert.NotNil(t, outcome.Result.AccessibilityIssues)
	assert.Equal(t, models.ResolutionValid, outcome.Resolution)
	webClient.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything)
	gateway.AssertExpectations(t)
}

func TestAuditor_SanitizedSnippetMatchesModelPayload(t *testing.T) {
	gateway := new(MockModelGateway)
	var sent string
	gateway.On("Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.String(2) }).
		Return(validResultJSON, nil).Once()

	req := &models.AuditRequest{Mode: models.ModeHTML, HTML: strPtr(`<button onclick="x()">Buy</button><script>evil()</script>`)}
	outcome, err := newTestAuditor(new(MockWebClient), gateway).Audit(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "<button>Buy</button>", outcome.SanitizedSnippet)
	assert.Contains(t, sent, "Content:\n"+outcome.SanitizedSnippet+"\n\n")
	assert.NotContains(t, sent, "evil()")
}

func TestAuditor_URLMode(t *testing.T) {
	page := "<html><head><title>Shop</title></head><body><a href='/cart'>Cart</a></body></html>"

	webClient := new(MockWebClient)
	webClient.On("Fetch", mock.Anything, "https://shop.example", int64(1_000_000)).Return(&adaptors.FetchedPage{
		Body:        []byte(page),
		RawBytes:    len(page),
		StatusCode:  200,
		ContentType: "text/html",
	}, nil).Once()

	gateway := new(MockModelGateway)
	gateway.On("Complete", mock.Anything, mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "AnalyzedTarget: https://shop.example") && strings.Contains(prompt, "Mode: url")
	}), mock.Anything).Return(validResultJSON, nil).Once()

	req := &models.AuditRequest{Mode: models.ModeURL, URL: strPtr("https://shop.example")}
	outcome, err := newTestAuditor(webClient, gateway).Audit(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "https://shop.example", outcome.AnalyzedTarget)
	assert.Equal(t, "Title: Shop\n\n<a href='/cart'>Cart</a>", outcome.SanitizedSnippet)
	webClient.AssertExpectations(t)
	gateway.AssertExpectations(t)
}

func TestAuditor_RejectsWithoutCallingCollaborators(t *testing.T) {
	tests := []struct {
		name    string
		req     *models.AuditRequest
		message string
	}{
		{"honeypot", &models.AuditRequest{Mode: models.ModeHTML, HTML: strPtr("<p>x</p>"), Honeypot: "bot"}, "spam detected"},
		{"honeypot beats invalid mode", &models.AuditRequest{Mode: "pdf", Honeypot: " x "}, "spam detected"},
		{"html too large", &models.AuditRequest{Mode: models.ModeHTML, HTML: strPtr(strings.Repeat("a", 12001))}, "html too large (max 12000 chars)"},
		{"missing html", &models.AuditRequest{Mode: models.ModeHTML}, "html required for mode=html"},
		{"empty html", &models.AuditRequest{Mode: models.ModeHTML, HTML: strPtr("")}, "empty html"},
		{"ftp url", &models.AuditRequest{Mode: models.ModeURL, URL: strPtr("ftp://example.com")}, "invalid url scheme"},
		{"missing url", &models.AuditRequest{Mode: models.ModeURL}, "url required for mode=url"},
		{"unknown mode", &models.AuditRequest{Mode: "pdf"}, `invalid request: mode must be "html" or "url"`},
		{"only scripts", &models.AuditRequest{Mode: models.ModeHTML, HTML: strPtr("<script>a()</script>  ")}, "empty content after extraction"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			webClient := new(MockWebClient)
			gateway := new(MockModelGateway)

			outcome, err := newTestAuditor(webClient, gateway).Audit(context.Background(), tt.req)

			assert.Nil(t, outcome)
			require.Error(t, err)
			assert.Equal(t, tt.message, pkgerrors.Message(err))
			webClient.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything)
			gateway.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestAuditor_HTMLAtLimitIsAccepted(t *testing.T) {
	gateway := new(MockModelGateway)
	gateway.On("Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(validResultJSON, nil).Once()

	req := &models.AuditRequest{Mode: models.ModeHTML, HTML: strPtr(strings.Repeat("é", 12000))}
	_, err := newTestAuditor(new(MockWebClient), gateway).Audit(context.Background(), req)
	assert.NoError(t, err)
}

func TestAuditor_PropagatesFailures(t *testing.T) {
	t.Run("fetch", func(t *testing.T) {
		webClient := new(MockWebClient)
		webClient.On("Fetch", mock.Anything, mock.Anything, mock.Anything).Return(&adaptors.FetchedPage{StatusCode: 500}, nil)
		gateway := new(MockModelGateway)

		_, err := newTestAuditor(webClient, gateway).Audit(context.Background(),
			&models.AuditRequest{Mode: models.ModeURL, URL: strPtr("http://down.example")})

		var fetchErr *pkgerrors.FetchError
		assert.ErrorAs(t, err, &fetchErr)
		gateway.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unresolvable model output", func(t *testing.T) {
		gateway := new(MockModelGateway)
		gateway.On("Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("plain prose", nil).Twice()

		_, err := newTestAuditor(new(MockWebClient), gateway).Audit(context.Background(),
			&models.AuditRequest{Mode: models.ModeHTML, HTML: strPtr("<p>x</p>")})

		var resolutionErr *pkgerrors.ResolutionError
		require.ErrorAs(t, err, &resolutionErr)
		assert.Equal(t, "plain prose", resolutionErr.Raw)
	})
}

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, "ok", outcomeOf(nil))
	assert.Equal(t, "spam", outcomeOf(pkgerrors.ErrSpam))
	assert.Equal(t, "invalid", outcomeOf(pkgerrors.NewValidationError("bad")))
	assert.Equal(t, "fetch_error", outcomeOf(&pkgerrors.FetchError{}))
	assert.Equal(t, "rate_limited", outcomeOf(&pkgerrors.ModelError{Status: 429}))
	assert.Equal(t, "model_error", outcomeOf(&pkgerrors.ModelError{Status: 500}))
	assert.Equal(t, "unresolved", outcomeOf(&pkgerrors.ResolutionError{}))
	assert.Equal(t, "error", outcomeOf(pkgerrors.New("boom")))
}
