package ecfrag

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with fragment-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithIndex adds a fragment index field to the logger.
func (l *Logger) WithIndex(idx uint32) *Logger {
	return &Logger{
		Logger: l.Logger.With("idx", idx),
	}
}

// WithBackend adds a backend field to the logger.
func (l *Logger) WithBackend(id BackendID) *Logger {
	return &Logger{
		Logger: l.Logger.With("backend", id.String()),
	}
}

// WithSize adds a payload size field to the logger.
func (l *Logger) WithSize(size int) *Logger {
	return &Logger{
		Logger: l.Logger.With("size", size),
	}
}

// LogHeaderViolation logs a failed magic check, naming the operation
// that detected it.
func (l *Logger) LogHeaderViolation(op string) {
	l.Error("invalid fragment header",
		"op", op,
	)
}

// LogAlloc logs a fragment buffer allocation.
func (l *Logger) LogAlloc(payloadSize, totalSize int, err error) {
	if err != nil {
		l.Error("fragment allocation failed",
			"payload_size", payloadSize,
			"total_size", totalSize,
			"error", err,
		)
	} else {
		l.Debug("fragment allocated",
			"payload_size", payloadSize,
			"total_size", totalSize,
		)
	}
}

// LogFree logs a fragment buffer release.
func (l *Logger) LogFree(err error) {
	if err != nil {
		l.Error("fragment free failed",
			"error", err,
		)
	} else {
		l.Debug("fragment freed")
	}
}

// LogVerify logs a stripe verification pass.
func (l *Logger) LogVerify(checked int, invalid, mismatched []int, err error) {
	if err != nil {
		l.Error("stripe verification failed",
			"checked", checked,
			"error", err,
		)
	} else if len(invalid) > 0 || len(mismatched) > 0 {
		l.Warn("stripe verification found damage",
			"checked", checked,
			"invalid", invalid,
			"mismatched", mismatched,
		)
	} else {
		l.Debug("stripe verification completed",
			"checked", checked,
		)
	}
}
