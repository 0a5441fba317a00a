package http

import (
	"context"

	"ux_auditor/internal/application/config"
	"ux_auditor/internal/service"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
)

type Router struct {
	httpRouter *chi.Mux
	auditor    service.UXAuditor
	auditCfg   config.AuditConfig
	log        *log.Logger
}

func NewRouter(ctx context.Context, log *log.Logger, appCfg *config.AppConfig, auditor service.UXAuditor) *chi.Mux {
	router := &Router{
		httpRouter: chi.NewRouter(),
		auditor:    auditor,
		auditCfg:   appCfg.Audit,
		log:        log,
	}
	initRoutes(ctx, router)
	return router.httpRouter
}

// Init runs the api, metrics and (in debug mode) pprof servers until ctx is
// canceled or one of them fails, then shuts them all down.
func Init(ctx context.Context, log *log.Logger, appCfg *config.AppConfig, auditor service.UXAuditor) error {
	cfg, err := NewHTTPServerConfig()
	if err != nil {
		return err
	}

	servers := []*Server{
		NewMetricsServer(appCfg.MetricsHost, cfg, log),
		NewAPIServer(cfg, NewRouter(ctx, log, appCfg, auditor), log),
	}
	if appCfg.DebugMode {
		servers = append(servers, NewPprofServer(appCfg.PprofHost, cfg, log))
	}

	return serve(ctx, log, servers)
}

func serve(ctx context.Context, log *log.Logger, servers []*Server) error {
	failed := make(chan error, len(servers))
	for _, s := range servers {
		go func() {
			if err := s.Start(); err != nil {
				failed <- err
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-failed:
		log.WithError(runErr).Error(`server failed, shutting down`)
	}

	// Reverse start order: the api stops taking audits before metrics goes away.
	for i := len(servers) - 1; i >= 0; i-- {
		if err := servers[i].Stop(); err != nil && runErr == nil {
			runErr = err
		}
	}
	return runErr
}
