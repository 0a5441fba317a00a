package adaptors

import (
	"context"
	"strconv"
	"time"

	"ux_auditor/internal/application/config"
	"ux_auditor/internal/domain/adaptors"
	"ux_auditor/internal/pkg/errors"
	"ux_auditor/internal/pkg/metrics"

	log "github.com/sirupsen/logrus"
)

// NewModelGateway returns the completion client for the configured provider.
func NewModelGateway(ctx context.Context, cfg config.LLMConfig, log *log.Logger) (adaptors.ModelGateway, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIGateway(cfg, log), nil
	case config.ProviderAnthropic:
		return NewAnthropicGateway(cfg, log), nil
	case config.ProviderGemini:
		return NewGeminiGateway(ctx, cfg, log)
	}
	return nil, errors.Errorf(`unsupported llm provider %q`, cfg.Provider)
}

// callTimeout bounds one completion call. The caller's deadline wins when it
// is shorter.
func callTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// observeCompletion records latency and status of one completion call.
func observeCompletion(provider string, start time.Time, err error) {
	metrics.ModelRequestDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())

	code := `200`
	var modelErr *errors.ModelError
	switch {
	case err == nil:
	case errors.As(err, &modelErr):
		code = strconv.Itoa(modelErr.Status)
	default:
		code = `0`
	}
	metrics.ModelRequestsTotal.WithLabelValues(provider, code).Inc()
}

func logCompletion(ctx context.Context, logger *log.Logger, provider, model string, start time.Time, err error) {
	entry := logger.WithContext(ctx).WithFields(log.Fields{
		`provider`:    provider,
		`model`:       model,
		`duration_ms`: time.Since(start).Milliseconds(),
	})
	if err != nil {
		entry.WithError(err).Error(`model completion failed`)
		return
	}
	entry.Debug(`model completion finished`)
}
