package application

import (
	"context"
	"time"

	"ux_auditor/internal/adaptors"
	"ux_auditor/internal/application/config"
	"ux_auditor/internal/pkg/errors"
	"ux_auditor/internal/pkg/request_id"
	"ux_auditor/internal/service"

	log "github.com/sirupsen/logrus"
)

// NewLogger builds the process logger from cfg.
func NewLogger(cfg *config.AppConfig) (*log.Logger, error) {
	logInstance := log.New()

	logLevel, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, `failed to parse log level`)
	}

	logInstance.SetFormatter(&log.JSONFormatter{
		TimestampFormat:   time.RFC3339,
		DisableHTMLEscape: true,
	})
	logInstance.SetLevel(logLevel)
	logInstance.AddHook(request_id.Hook{})

	return logInstance, nil
}

// NewAuditor wires the fetcher and the configured model provider into an
// auditor shared by the http server and the cli.
func NewAuditor(ctx context.Context, log *log.Logger, cfg *config.AppConfig) (*service.Auditor, error) {
	gateway, err := adaptors.NewModelGateway(ctx, cfg.LLM, log)
	if err != nil {
		return nil, err
	}

	webClient := adaptors.NewWebClient(cfg.Audit.FetchTimeout, cfg.Audit.AllowPrivateHosts, log)

	log.WithField(`provider`, cfg.LLM.Provider).
		WithField(`model`, cfg.LLM.Model).
		Info(`auditor ready`)

	return service.NewAuditor(log, webClient, gateway, cfg.Audit), nil
}
