package adaptors

import (
	"context"
	"time"

	"ux_auditor/internal/application/config"
	"ux_auditor/internal/domain/adaptors"
	"ux_auditor/internal/pkg/errors"

	log "github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

type GeminiGateway struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	log     *log.Logger
}

func NewGeminiGateway(ctx context.Context, cfg config.LLMConfig, log *log.Logger) (*GeminiGateway, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, errors.Wrap(err, `failed to create gemini client`)
	}

	return &GeminiGateway{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		log:     log,
	}, nil
}

func (g *GeminiGateway) Provider() string {
	return config.ProviderGemini
}

func (g *GeminiGateway) Complete(ctx context.Context, systemPrompt, userPrompt string, opts adaptors.CompletionOptions) (text string, err error) {
	ctx, cancel := callTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		observeCompletion(g.Provider(), start, err)
		logCompletion(ctx, g.log, g.Provider(), g.model, start, err)
	}()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(userPrompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr(float32(opts.Temperature)),
		MaxOutputTokens:   int32(opts.MaxTokens),
	})
	if err != nil {
		return "", g.toModelError(err)
	}
	return resp.Text(), nil
}

func (g *GeminiGateway) toModelError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &errors.ModelError{Provider: g.Provider(), Status: apiErr.Code, Body: apiErr.Message, Cause: err}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return &errors.ModelError{Provider: g.Provider(), Status: apiErrPtr.Code, Body: apiErrPtr.Message, Cause: err}
	}
	return &errors.ModelError{Provider: g.Provider(), Body: err.Error(), Cause: err}
}
