// Package logger provides structured logging for sahkolasku.
//
// The core computation packages stay silent; logging belongs to the
// driver layer (file loading, watch loops, publishing). The logger
// supports text and JSON output, configurable levels, and contextual
// fields.
//
// Example usage:
//
//	log := logger.New(logger.Config{Level: "info", Output: "stderr"})
//	log.Info("loading usage export", "path", path)
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger provides structured logging with levels and fields.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs.
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an informational message with optional key-value pairs.
	Info(msg string, keysAndValues ...interface{})

	// Warn logs a warning message with optional key-value pairs.
	Warn(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs.
	Error(msg string, keysAndValues ...interface{})

	// With returns a new logger with additional context fields.
	With(keysAndValues ...interface{}) Logger
}

// Config contains logger configuration.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string

	// Output is the destination (stdout, stderr, or a file path).
	Output string

	// Format is the output format (text, json).
	Format string
}

// logger implements the Logger interface using slog.
type logger struct {
	slogger *slog.Logger
}

// New creates a logger with the given configuration. An invalid
// configuration falls back to info level, text format, on stderr.
func New(cfg Config) Logger {
	writer, err := openWriter(cfg.Output)
	if err != nil {
		writer = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(writer, opts)
	} else {
		handler = slog.NewTextHandler(writer, opts)
	}

	return &logger{slogger: slog.New(handler)}
}

// Default returns an info-level text logger on stderr.
func Default() Logger {
	return New(Config{Level: "info", Output: "stderr", Format: "text"})
}

// Noop returns a logger that discards everything. Useful in tests.
func Noop() Logger {
	return &logger{slogger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// Debug implements Logger.Debug.
func (l *logger) Debug(msg string, keysAndValues ...interface{}) {
	l.slogger.Debug(msg, keysAndValues...)
}

// Info implements Logger.Info.
func (l *logger) Info(msg string, keysAndValues ...interface{}) {
	l.slogger.Info(msg, keysAndValues...)
}

// Warn implements Logger.Warn.
func (l *logger) Warn(msg string, keysAndValues ...interface{}) {
	l.slogger.Warn(msg, keysAndValues...)
}

// Error implements Logger.Error.
func (l *logger) Error(msg string, keysAndValues ...interface{}) {
	l.slogger.Error(msg, keysAndValues...)
}

// With implements Logger.With.
func (l *logger) With(keysAndValues ...interface{}) Logger {
	return &logger{slogger: l.slogger.With(keysAndValues...)}
}

// parseLevel converts a level name to a slog.Level, defaulting to
// info for anything unrecognized.
func parseLevel(level string) slog.Level {
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

// openWriter resolves an output destination. "stdout" and "stderr"
// are the streams; anything else is opened as a file for appending.
func openWriter(output string) (io.Writer, error) {
	switch strings.ToLower(output) {
	case "stdout":
		return os.Stdout, nil
	case "stderr", "":
		return os.Stderr, nil
	default:
		return os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	}
}
