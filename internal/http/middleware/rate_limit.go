package middleware

import (
	"encoding/json"
	"net/http"

	"ux_auditor/internal/pkg/request_id"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware rejects requests beyond a process-wide token bucket.
// rps <= 0 disables it.
func RateLimitMiddleware(rps float64, burst int, logger *log.Logger) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				logger.WithContext(r.Context()).WithField(`path`, r.URL.Path).Warn(`audit rate limit exceeded`)
				w.Header().Set(`Content-Type`, `application/json`)
				w.Header().Set(`Retry-After`, `1`)
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]any{
					`error`:      `too many audit requests`,
					`code`:       http.StatusTooManyRequests,
					`request_id`: request_id.FromContext(r.Context()),
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
