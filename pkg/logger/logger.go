// Package logger provides a structured, levelled logger built on log/slog.
//
// Screens log their lifecycle at debug level; user-facing failures stay on
// screen (the client never substitutes a log line for an inline message).
// WithScreen returns a logger pre-tagged with the screen name so every line
// from one controller is correlated:
//
//	log := logger.WithScreen("dashboard")
//	log.Debug("products loaded", "count", len(products))
//	// → time=... level=DEBUG msg="products loaded" screen=dashboard count=5
package logger

import (
	"log/slog"
	"os"

	"github.com/shashiranjanraj/bazaar/config"
)

var (
	L        *slog.Logger
	fileSink *FileHandler
)

func init() {
	var level slog.Level
	var handler slog.Handler

	opts := &slog.HandlerOptions{Level: level}

	switch config.AppEnv() {
	case "production", "prod":
		level = slog.LevelInfo
		opts.Level = level
		handler = slog.NewJSONHandler(os.Stderr, opts) // structured JSON for log aggregators
	default:
		level = slog.LevelDebug
		opts.Level = level
		handler = slog.NewTextHandler(os.Stderr, opts) // human-readable for dev
	}

	// LOG_FILE adds an async JSON-lines sink alongside stderr.
	if path := config.Get("LOG_FILE", ""); path != "" {
		if fh, err := NewFileHandler(path); err == nil {
			fileSink = fh
			handler = NewMultiHandler(handler, fh)
		}
	}

	L = slog.New(handler)
	slog.SetDefault(L)
}

// Close flushes the file sink, if one is configured. Called on exit.
func Close() {
	if fileSink != nil {
		fileSink.Close()
	}
}

// WithScreen returns a *slog.Logger pre-tagged with the screen name.
func WithScreen(name string) *slog.Logger {
	return L.With("screen", name)
}

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
