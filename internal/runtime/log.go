package runtime

import (
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

// NewLogger returns a JSON logger writing to stderr so the interactive menu
// on stdout stays clean. Every entry carries the service name and a session
// id, which keeps log lines from concurrent terminals distinguishable.
func NewLogger(service string, level slog.Level) *slog.Logger {
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(h).With("service", service, "session_id", uuid.NewString())
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
