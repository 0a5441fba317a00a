package http

import (
	"context"

	"ux_auditor/internal/http/handlers"
	"ux_auditor/internal/http/middleware"
	"ux_auditor/internal/pkg/request_id"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func initRoutes(_ context.Context, r *Router) {
	r.httpRouter.Use(middleware.MetricsMiddleware)
	r.httpRouter.Use(middleware.RequestIDLoggerMiddleware(r.log))
	r.httpRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", request_id.Header},
		ExposedHeaders: []string{request_id.Header},
		MaxAge:         300,
	}))

	audit := handlers.NewAuditHandler(r.auditor, r.log).Handle
	limited := middleware.RateLimitMiddleware(r.auditCfg.RateLimitRPS, r.auditCfg.RateLimitBurst, r.log)

	// Routes
	r.httpRouter.Get("/ready", handlers.NewReadyHandler().Handle)
	r.httpRouter.Group(func(g chi.Router) {
		g.Use(limited)
		g.Post("/audit", audit)
		g.Post("/api/ux-audit", audit)
	})
}
