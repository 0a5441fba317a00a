package http

import (
	"net/http"

	"ux_auditor/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// NewMetricsServer exposes the audit registry on /metrics of its own listener.
func NewMetricsServer(host string, cfg *HTTPServerConfig, log *log.Logger) *Server {
	reg := metrics.MetricsRegister()

	mux := http.NewServeMux()
	mux.Handle(`/metrics`, promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	return newServer(`metrics`, host, mux, cfg, log)
}
