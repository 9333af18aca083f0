package logging

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger returns a JSON slog logger tagged with the service name.
// Development builds log at debug level.
func NewLogger(service, appEnv string) *slog.Logger {
	return New(os.Stdout, service, appEnv)
}

func New(w io.Writer, service, appEnv string) *slog.Logger {
	level := slog.LevelInfo
	if appEnv == "development" {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{AddSource: true, Level: level})
	return slog.New(handler).With(slog.String("service", service))
}

// Discard is a logger for tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// WithUser attaches the acting user id.
func WithUser(logger *slog.Logger, userID string) *slog.Logger {
	return logger.With(slog.String("user_id", userID))
}
