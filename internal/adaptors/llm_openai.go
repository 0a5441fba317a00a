package adaptors

import (
	"context"
	"time"

	"ux_auditor/internal/application/config"
	"ux_auditor/internal/domain/adaptors"
	"ux_auditor/internal/pkg/errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	log "github.com/sirupsen/logrus"
)

type OpenAIGateway struct {
	client  openai.Client
	model   string
	timeout time.Duration
	log     *log.Logger
}

func NewOpenAIGateway(cfg config.LLMConfig, log *log.Logger) *OpenAIGateway {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIGateway{
		client:  openai.NewClient(opts...),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		log:     log,
	}
}

func (g *OpenAIGateway) Provider() string {
	return config.ProviderOpenAI
}

func (g *OpenAIGateway) Complete(ctx context.Context, systemPrompt, userPrompt string, opts adaptors.CompletionOptions) (text string, err error) {
	ctx, cancel := callTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		observeCompletion(g.Provider(), start, err)
		logCompletion(ctx, g.log, g.Provider(), g.model, start, err)
	}()

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Temperature: openai.Float(opts.Temperature),
		MaxTokens:   openai.Int(int64(opts.MaxTokens)),
	})
	if err != nil {
		return "", g.toModelError(err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (g *OpenAIGateway) toModelError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		body := apiErr.RawJSON()
		if body == "" {
			body = apiErr.Message
		}
		return &errors.ModelError{Provider: g.Provider(), Status: apiErr.StatusCode, Body: body, Cause: err}
	}
	return &errors.ModelError{Provider: g.Provider(), Body: err.Error(), Cause: err}
}
