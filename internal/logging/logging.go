package logging

import (
	"io"
	"log/slog"
)

// Verbose reports whether verbose logging was requested.
var Verbose bool

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Setup configures the debug logger. Debug-level records are emitted only
// in verbose mode; json selects the JSON handler over text.
func Setup(verbose, json bool, w io.Writer) {
	Verbose = verbose

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger = slog.New(handler)
}

// Debug logs a debug message with key-value attributes
func Debug(msg string, args ...any) {
	logger.Debug(msg, args...)
}

// Info logs an info message with key-value attributes
func Info(msg string, args ...any) {
	logger.Info(msg, args...)
}

// Warn logs a warning with key-value attributes
func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

// Error logs an error with key-value attributes
func Error(msg string, args ...any) {
	logger.Error(msg, args...)
}

// With returns a logger with preset attributes
func With(args ...any) *slog.Logger {
	return logger.With(args...)
}
