// Package logger constructs the slog logger shared by the CLI and pipeline.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// New builds a text logger writing to stderr with the level taken from the
// LOG_LEVEL environment variable (debug, info, warn, error; default info).
func New() *slog.Logger {
	level := parseLevel(os.Getenv("LOG_LEVEL"))
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
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
