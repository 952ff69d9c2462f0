// Package log provides structured logging for the ALTA session
// packages. It wraps log/slog with a per-subsystem child-logger
// convenience, since a single session typically drives both a send
// pipeline and a receive pipeline with distinct log context, plus the
// ALTA-domain Level enum and LevelFromString parser that slog.Level
// alone does not give callers configuring a session from a string (a
// config file or flag value).
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger.
type Logger struct {
	inner *slog.Logger
}

var defaultLogger *Logger

func init() {
	defaultLogger = New(INFO)
}

// toSlogLevel maps Level onto slog's level space. FATAL has no slog
// counterpart; it sits one step above slog.LevelError so a handler
// filtering at LevelError still emits fatal records.
func toSlogLevel(l Level) slog.Level {
	switch l {
	case DEBUG:
		return slog.LevelDebug
	case INFO:
		return slog.LevelInfo
	case WARN:
		return slog.LevelWarn
	case FATAL:
		return slog.LevelError + 4
	default:
		return slog.LevelError
	}
}

// New creates a Logger that writes JSON to stderr, filtering below level.
func New(level Level) *Logger {
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: toSlogLevel(level),
	})
	return &Logger{inner: slog.New(h)}
}

// NewDiscard creates a Logger whose output is dropped. Collaborators
// that take an optional *Logger use this as their nil-safe default, so
// logging never becomes a correctness dependency.
func NewDiscard() *Logger {
	return NewWithHandler(slog.NewTextHandler(io.Discard, nil))
}

// NewWithHandler creates a Logger backed by the supplied slog.Handler.
// Tests typically use this to capture output or to discard it.
func NewWithHandler(h slog.Handler) *Logger {
	return &Logger{inner: slog.New(h)}
}

// SetDefault replaces the package-level default logger.
func SetDefault(l *Logger) {
	if l != nil {
		defaultLogger = l
	}
}

// Default returns the current package-level default logger.
func Default() *Logger {
	return defaultLogger
}

// Subsystem returns a child logger with an additional "subsystem"
// attribute, e.g. "sendbuffer", "recvbuffer", "wire".
func (l *Logger) Subsystem(name string) *Logger {
	return &Logger{inner: l.inner.With("subsystem", name)}
}

// With returns a child logger with additional key-value context, e.g.
// a peer identifier carried on every subsequent log line.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{inner: l.inner.With(args...)}
}

// Debug logs at DEBUG.
func (l *Logger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }

// Info logs at INFO.
func (l *Logger) Info(msg string, args ...any) { l.inner.Info(msg, args...) }

// Warn logs at WARN.
func (l *Logger) Warn(msg string, args ...any) { l.inner.Warn(msg, args...) }

// Error logs at ERROR.
func (l *Logger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

// Fatal logs at FATAL then terminates the process with os.Exit(1).
// Reserved for unrecoverable startup failures (bad config, an
// unreachable registerer); session-level errors such as
// BadAuthentication are returned to the caller instead, never fatal.
func (l *Logger) Fatal(msg string, args ...any) {
	l.inner.Log(context.Background(), toSlogLevel(FATAL), msg, args...)
	os.Exit(1)
}

// Debug logs at DEBUG using the default logger.
func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }

// Info logs at INFO using the default logger.
func Info(msg string, args ...any) { defaultLogger.Info(msg, args...) }

// Warn logs at WARN using the default logger.
func Warn(msg string, args ...any) { defaultLogger.Warn(msg, args...) }

// Error logs at ERROR using the default logger.
func Error(msg string, args ...any) { defaultLogger.Error(msg, args...) }

// Fatal logs at FATAL using the default logger then exits the process.
func Fatal(msg string, args ...any) { defaultLogger.Fatal(msg, args...) }
