package adaptors

import (
	"context"
	"strings"
	"time"

	"ux_auditor/internal/application/config"
	"ux_auditor/internal/domain/adaptors"
	"ux_auditor/internal/pkg/errors"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	log "github.com/sirupsen/logrus"
)

type AnthropicGateway struct {
	client  anthropic.Client
	model   string
	timeout time.Duration
	log     *log.Logger
}

func NewAnthropicGateway(cfg config.LLMConfig, log *log.Logger) *AnthropicGateway {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &AnthropicGateway{
		client:  anthropic.NewClient(opts...),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		log:     log,
	}
}

func (g *AnthropicGateway) Provider() string {
	return config.ProviderAnthropic
}

func (g *AnthropicGateway) Complete(ctx context.Context, systemPrompt, userPrompt string, opts adaptors.CompletionOptions) (text string, err error) {
	ctx, cancel := callTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		observeCompletion(g.Provider(), start, err)
		logCompletion(ctx, g.log, g.Provider(), g.model, start, err)
	}()

	resp, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: int64(opts.MaxTokens),
		System: []anthropic.TextBlockParam{
			{Type: "text", Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
		Temperature: anthropic.Float(opts.Temperature),
	})
	if err != nil {
		return "", g.toModelError(err)
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return b.String(), nil
}

func (g *AnthropicGateway) toModelError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		body := apiErr.RawJSON()
		if body == "" {
			body = err.Error()
		}
		return &errors.ModelError{Provider: g.Provider(), Status: apiErr.StatusCode, Body: body, Cause: err}
	}
	return &errors.ModelError{Provider: g.Provider(), Body: err.Error(), Cause: err}
}
