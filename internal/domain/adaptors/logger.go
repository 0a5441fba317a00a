package adaptors

type LogLevel string

const (
	Trace LogLevel = "trace"
	Debug LogLevel = "debug"
	Info  LogLevel = "info"
	Warn  LogLevel = "warn"
	Error LogLevel = "error"
)

// LogLevels lists the levels accepted by APP_LOG_LEVEL.
var LogLevels = []LogLevel{Trace, Debug, Info, Warn, Error}

func (l LogLevel) Valid() bool {
	for _, lvl := range LogLevels {
		if l == lvl {
			return true
		}
	}
	return false
}
