package request_id

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// Header is the inbound and outbound header carrying the request id.
const Header = `x-request-id`

type ctxKey struct{}

func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the request id stored in ctx, or "".
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Hook adds request_id to every entry logged with WithContext.
type Hook struct{}

func (Hook) Levels() []log.Level {
	return log.AllLevels
}

func (Hook) Fire(entry *log.Entry) error {
	if id := FromContext(entry.Context); id != "" {
		entry.Data[`request_id`] = id
	}
	return nil
}
