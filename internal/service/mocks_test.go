package service

import (
	"context"
	"io"

	"ux_auditor/internal/domain/adaptors"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

// MockWebClient is a mock implementation of the WebClient interface
type MockWebClient struct {
	mock.Mock
}

func (m *MockWebClient) Fetch(ctx context.Context, url string, maxBytes int64) (*adaptors.FetchedPage, error) {
	args := m.Called(ctx, url, maxBytes)
	page, _ := args.Get(0).(*adaptors.FetchedPage)
	return page, args.Error(1)
}

// MockModelGateway is a mock implementation of the ModelGateway interface
type MockModelGateway struct {
	mock.Mock
}

func (m *MockModelGateway) Complete(ctx context.Context, systemPrompt, userPrompt string, opts adaptors.CompletionOptions) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt, opts)
	return args.String(0), args.Error(1)
}

func (m *MockModelGateway) Provider() string {
	return "mock"
}

func quietLogger() *log.Logger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}

const validResultJSON = `{
  "overall_score": 72,
  "summary": "Analyzed: Code Snippet - image lacks alt text.",
  "accessibility_issues": [
    {"issue": "Missing alt", "severity": "High", "evidence": "<img src='/logo.png'>", "recommendation": "Add alt text", "selector": "img"},
    {"issue": "Low contrast", "severity": "Low", "evidence": "color: #aaa", "recommendation": "Darken text"}
  ],
  "ux_improvements": [
    {"issue": "No heading", "severity": "Medium", "evidence": "<body>", "recommendation": "Add an h1"}
  ],
  "quick_fixes": [{"title": "Add alt", "diff_like_suggestion": "+ alt=\"Logo\""}],
  "unknowns": []
}`
