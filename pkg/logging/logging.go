// Package logging configures structured logging for tabsplit: colored
// output with tint in development, JSON lines in production.
//
// Usage:
//
//	logging.Setup("debug", false)  // colored, DEBUG level
//	logging.Setup("info", true)    // JSON, INFO level
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup installs the default slog logger at the named level.
func Setup(level string, json bool) {
	slog.SetDefault(slog.New(NewHandler(os.Stderr, ParseLevel(level), json)))
}

// NewHandler returns a JSON handler or a colored tint handler writing to w.
func NewHandler(w io.Writer, level slog.Level, json bool) slog.Handler {
	if json {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  true,
	})
}

// ParseLevel maps debug, warn and error to their slog levels. Anything
// else is INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard returns a logger that drops everything, for tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
