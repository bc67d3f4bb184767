package tfrec

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with tfrec-specific helpers.
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
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithSink adds the output name to every record.
func (l *Logger) WithSink(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("sink", name),
	}
}

// LogOpen logs the creation of an output sink.
func (l *Logger) LogOpen(ctx context.Context, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "open failed",
			"name", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "sink opened",
			"name", name,
		)
	}
}

// LogRow logs one appended row.
func (l *Logger) LogRow(ctx context.Context, row, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "row failed",
			"row", row,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "row written",
			"row", row,
			"bytes", bytes,
		)
	}
}

// LogClose logs the release of an output sink.
func (l *Logger) LogClose(ctx context.Context, rows int, bytes int64, discarded bool, err error) {
	switch {
	case err != nil:
		l.ErrorContext(ctx, "close failed",
			"rows", rows,
			"error", err,
		)
	case discarded:
		l.WarnContext(ctx, "sink discarded",
			"rows", rows,
		)
	default:
		l.DebugContext(ctx, "sink closed",
			"rows", rows,
			"bytes", bytes,
		)
	}
}

// LogRun logs the outcome of a whole dataset write.
func (l *Logger) LogRun(ctx context.Context, name string, rows int, bytes int64, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "write failed",
			"name", name,
			"rows", rows,
			"duration", duration,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "write completed",
			"name", name,
			"rows", rows,
			"bytes", bytes,
			"duration", duration,
		)
	}
}
