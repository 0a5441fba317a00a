package metrics

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// --- Inbound (server) metrics ---
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_requests_total",
			Help: "Total number of HTTP requests processed.",
		},
		[]string{"method", "route", "code"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	HTTPRequestErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_errors_total",
			Help: "Total number of HTTP requests resulting in client or server errors.",
		},
		[]string{"method", "route", "code"},
	)
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_server_requests_in_flight",
			Help: "Requests currently being served.",
		},
	)

	// --- Outbound page fetch metrics ---
	HTTPClientRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_client_requests_total",
			Help: "Total number of outbound page fetches.",
		},
		[]string{"method", "code"},
	)
	HTTPClientRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_client_request_duration_seconds",
			Help:    "Latency of outbound page fetches.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "code"},
	)
	FetchBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ux_audit_fetch_bytes",
			Help:    "Raw bytes read per fetched page.",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		},
	)

	// --- Audit pipeline metrics ---
	AuditsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ux_audit_requests_total",
			Help: "Audits by mode and outcome.",
		},
		[]string{"mode", "outcome"},
	)
	ResolutionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ux_audit_resolution_total",
			Help: "Resolver outcomes: valid, coerced, repaired or failed.",
		},
		[]string{"path"},
	)
	ModelRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ux_audit_model_requests_total",
			Help: "Completion calls by provider and upstream status code.",
		},
		[]string{"provider", "code"},
	)
	ModelRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ux_audit_model_request_duration_seconds",
			Help:    "Latency of completion calls.",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		},
		[]string{"provider"},
	)

	// --- Runtime metrics ---
	CPUCount = promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "process_cpu_count",
			Help: "Number of CPU cores available.",
		},
		func() float64 { return float64(runtime.NumCPU()) },
	)
)

func MetricsRegister() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		HTTPRequestsTotal,
		HTTPRequestDuration,
		HTTPRequestErrorsTotal,
		HTTPRequestsInFlight,
		HTTPClientRequestsTotal,
		HTTPClientRequestDuration,
		FetchBytes,
		AuditsTotal,
		ResolutionTotal,
		ModelRequestsTotal,
		ModelRequestDuration,
		CPUCount,
	)

	return reg
}
