package hkctree

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with hkctree-specific context, matching the
// structured-logging convention the rest of the ecosystem uses.
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
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &Logger{Logger: slog.New(handler)}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // unreachable level
	})
	return &Logger{Logger: slog.New(handler)}
}

// LogBuild logs a full tree-forest build.
func (l *Logger) LogBuild(ctx context.Context, trees, points int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "build failed", "trees", trees, "points", points, "error", err)
	} else {
		l.InfoContext(ctx, "build completed", "trees", trees, "points", points)
	}
}

// LogAddPoints logs an incremental insertion batch, including whether it
// triggered a full rebuild.
func (l *Logger) LogAddPoints(ctx context.Context, count int, rebuilt bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "add points failed", "count", count, "error", err)
	} else {
		l.DebugContext(ctx, "add points completed", "count", count, "rebuilt", rebuilt)
	}
}

// LogSearch logs a FindNeighbors call.
func (l *Logger) LogSearch(ctx context.Context, checks, resultsFound int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed", "checks", checks, "error", err)
	} else {
		l.DebugContext(ctx, "search completed", "checks", checks, "results", resultsFound)
	}
}

// LogPersist logs a Save or Load operation.
func (l *Logger) LogPersist(ctx context.Context, op, filename string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "persist failed", "op", op, "filename", filename, "error", err)
	} else {
		l.InfoContext(ctx, "persist completed", "op", op, "filename", filename)
	}
}
