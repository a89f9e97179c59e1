// Package logger provides structured logging functionality for the CLI.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup initializes the application's logging system. It creates a
// structured JSON logger at the configured level, sets it as the default
// logger, and returns it. Logs go to stderr so command output on stdout
// stays clean.
//
// An invalid level falls back to info with a warning rather than failing:
// logging misconfiguration should never stop a run.
func Setup(level string) *slog.Logger {
	return setup(level, os.Stderr)
}

func setup(level string, w io.Writer) *slog.Logger {
	parsed, ok := parseLevel(level)
	if !ok {
		tmp := slog.New(slog.NewTextHandler(w, nil))
		tmp.Warn("invalid log level configured, using default level",
			"configured_level", level,
			"default_level", "info")
		parsed = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parsed})
	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}

func parseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
