package monitoring

import (
	"log/slog"
	"os"
	"time"
)

// Logger provides structured logging with request and scoring context.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new enhanced logger
func NewLogger() *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   "timestamp",
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	})

	return &Logger{
		Logger: slog.New(handler),
	}
}

// RequestLogger logs HTTP request details
func (l *Logger) RequestLogger(method, path, ip string, statusCode int, duration time.Duration) {
	l.Info("HTTP Request",
		"method", method,
		"path", path,
		"ip", ip,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
	)
}

// EvaluationLogger logs a completed subnet evaluation.
func (l *Logger) EvaluationLogger(netuid int, quadrant string, positions map[string]float64, hasQuality bool, duration time.Duration) {
	l.Info("Evaluation Completed",
		"netuid", netuid,
		"quadrant", quadrant,
		"positions", positions,
		"has_quality", hasQuality,
		"duration_ms", duration.Milliseconds(),
	)
}

// ImportLogger logs a catalog import.
func (l *Logger) ImportLogger(source string, imported int, duration time.Duration) {
	l.Info("Catalog Import",
		"source", source,
		"imported", imported,
		"duration_ms", duration.Milliseconds(),
	)
}

// APIErrorLogger logs API errors with context
func (l *Logger) APIErrorLogger(err error, method, path, ip string, statusCode int) {
	l.Error("API Error",
		"error", err.Error(),
		"method", method,
		"path", path,
		"ip", ip,
		"status_code", statusCode,
	)
}

var startTime = time.Now()

// Uptime returns the process uptime.
func Uptime() time.Duration {
	return time.Since(startTime)
}
