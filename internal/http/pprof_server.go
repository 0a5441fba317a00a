package http

import (
	"net/http"
	"net/http/pprof"

	log "github.com/sirupsen/logrus"
)

// NewPprofServer mounts the runtime profiles on a private mux so they never
// leak onto the api listener.
func NewPprofServer(host string, cfg *HTTPServerConfig, log *log.Logger) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc(`/debug/pprof/`, pprof.Index)
	mux.HandleFunc(`/debug/pprof/cmdline`, pprof.Cmdline)
	mux.HandleFunc(`/debug/pprof/profile`, pprof.Profile)
	mux.HandleFunc(`/debug/pprof/symbol`, pprof.Symbol)
	mux.HandleFunc(`/debug/pprof/trace`, pprof.Trace)

	return newServer(`pprof`, host, mux, cfg, log)
}
