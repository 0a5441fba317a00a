package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"ux_auditor/internal/pkg/request_id"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// RequestIDLoggerMiddleware tags the request with an id (the caller's
// x-request-id or a fresh uuid), logs one access line per request and turns
// panics into a JSON 500.
func RequestIDLoggerMiddleware(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(request_id.Header)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			w.Header().Set(request_id.Header, reqID)
			ctx := request_id.NewContext(r.Context(), reqID)

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				rec := recover()
				if rec != nil && ww.Status() == 0 {
					writePanicResponse(ww, reqID)
				}

				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				entry := logger.WithContext(ctx).WithFields(log.Fields{
					`method`:   r.Method,
					`path`:     r.URL.Path,
					`status`:   status,
					`bytes`:    ww.BytesWritten(),
					`duration`: time.Since(start).String(),
				})

				switch {
				case rec != nil:
					entry.WithFields(log.Fields{
						`error`: fmt.Sprintf(`%v`, rec),
						`stack`: string(debug.Stack()),
					}).Error(`panic recovered`)
				case status >= http.StatusInternalServerError:
					entry.Error(`request failed`)
				case status >= http.StatusBadRequest:
					entry.Warn(`request rejected`)
				default:
					entry.Info(`request completed`)
				}
			}()

			next.ServeHTTP(ww, r.WithContext(ctx))
		})
	}
}

func writePanicResponse(w http.ResponseWriter, reqID string) {
	w.Header().Set(`Content-Type`, `application/json`)
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]any{
		`error`:      `internal server error`,
		`code`:       http.StatusInternalServerError,
		`request_id`: reqID,
	})
}
