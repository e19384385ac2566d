package banditgo

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with banditgo-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses the default text handler to stderr.
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

// LogEviction logs an ensemble slot recycling.
func (l *Logger) LogEviction(modelIdx, updateCount uint64) {
	l.Debug("config evicted",
		"model_idx", modelIdx,
		"update_count", updateCount,
	)
}

// LogSnapshotSave logs a snapshot save operation.
func (l *Logger) LogSnapshotSave(codecName string, bytes int64, err error) {
	if err != nil {
		l.Error("snapshot save failed",
			"codec", codecName,
			"error", err,
		)
	} else {
		l.Info("snapshot saved",
			"codec", codecName,
			"bytes", bytes,
		)
	}
}

// LogSnapshotLoad logs a snapshot load operation.
func (l *Logger) LogSnapshotLoad(codecName string, bytes int64, err error) {
	if err != nil {
		l.Error("snapshot load failed",
			"codec", codecName,
			"error", err,
		)
	} else {
		l.Info("snapshot loaded",
			"codec", codecName,
			"bytes", bytes,
		)
	}
}
