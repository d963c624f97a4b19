// Package logger configures structured logging for taskboard.
package logger

import (
	"io"
	"log/slog"
	"strings"
)

// New returns a text logger writing to w at the given level
// ("debug", "info", "warn" or "error", case-insensitive).
//
// An unknown level falls back to info and logs a warning through the new logger.
func New(w io.Writer, level string) *slog.Logger {
	lvl, ok := ParseLevel(level)

	log := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))

	if !ok {
		log.Warn("invalid log level configured, using default level",
			"configured_level", level,
			"default_level", "info")
	}

	return log
}

// ParseLevel maps a level name to a slog.Level. It returns slog.LevelInfo and
// false for unknown names.
func ParseLevel(level string) (slog.Level, bool) {
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
