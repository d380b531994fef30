package observability

import (
	"io"
	"log/slog"

	"github.com/km-arc/go-pore/framework/container"
)

// NewLogger creates a slog.Logger writing to w. It does not set the global
// logger. Unknown levels fall back to info, unknown formats to text.
func NewLogger(level, format string, w io.Writer) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(handler)
}

// ParseLevel maps debug|info|warn|error to a slog.Level.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogResolutions returns an observer that logs every resolution at debug
// level and failed ones at warn level.
func LogResolutions(logger *slog.Logger) container.Observer {
	if logger == nil {
		return nil
	}
	return func(res container.Resolution) {
		attrs := []any{
			slog.String("registry", res.Registry),
			slog.String("name", res.Name),
			slog.Bool("shared", res.Shared),
			slog.Bool("cached", res.Cached),
			slog.Float64("duration_ms", float64(res.Duration.Microseconds())/1000),
		}
		if res.Err != nil {
			logger.Warn("resolution failed", append(attrs, slog.String("error", res.Err.Error()))...)
			return
		}
		logger.Debug("resolved", attrs...)
	}
}

// Chain fans one resolution out to every non-nil observer, in order.
func Chain(observers ...container.Observer) container.Observer {
	var active []container.Observer
	for _, o := range observers {
		if o != nil {
			active = append(active, o)
		}
	}
	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0]
	}
	return func(res container.Resolution) {
		for _, o := range active {
			o(res)
		}
	}
}
