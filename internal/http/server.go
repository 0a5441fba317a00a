package http

import (
	"context"
	"net/http"
	"time"

	"ux_auditor/internal/pkg/errors"

	log "github.com/sirupsen/logrus"
)

// Server is one listener owned by Init: the audit api, metrics or pprof.
type Server struct {
	name         string
	server       *http.Server
	shutdownWait time.Duration
	log          *log.Logger
}

func newServer(name, addr string, handler http.Handler, cfg *HTTPServerConfig, log *log.Logger) *Server {
	return &Server{
		name: name,
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: cfg.Timeouts.ReadHeader,
			IdleTimeout:       cfg.Timeouts.Idle,
		},
		shutdownWait: cfg.Timeouts.ShutdownWait,
		log:          log,
	}
}

// NewAPIServer serves the audit routes with the full set of api timeouts.
// The write timeout must cover a fetch plus two model calls.
func NewAPIServer(cfg *HTTPServerConfig, handler http.Handler, log *log.Logger) *Server {
	s := newServer(`api`, cfg.Host, handler, cfg, log)
	s.server.ReadTimeout = cfg.Timeouts.Read
	s.server.WriteTimeout = cfg.Timeouts.Write
	return s
}

func (s *Server) Name() string {
	return s.name
}

// Start blocks until the listener fails or Stop is called. A clean stop
// returns nil.
func (s *Server) Start() error {
	s.log.WithField(`addr`, s.server.Addr).Infof(`%s server starting`, s.name)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, s.name+` server failed`)
	}
	return nil
}

// Stop drains in-flight requests for at most the configured shutdown wait.
func (s *Server) Stop() error {
	s.log.Infof(`shutting down %s server`, s.name)

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownWait)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return errors.Wrap(err, `failed to shutdown `+s.name+` server`)
	}

	s.log.Infof(`%s server exited`, s.name)
	return nil
}
