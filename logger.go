package mdlsel

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with selection-specific fields and helpers.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, uses a text handler to stderr at info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that writes JSON to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that writes human-readable text to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards everything.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler)}
}

// WithRunID tags every record with the selection run ID.
func (l *Logger) WithRunID(id string) *Logger {
	return &Logger{Logger: l.Logger.With("run_id", id)}
}

// WithClusters adds the cluster count.
func (l *Logger) WithClusters(n int) *Logger {
	return &Logger{Logger: l.Logger.With("clusters", n)}
}

// WithDimension adds the vector dimensionality.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{Logger: l.Logger.With("dimension", dim)}
}

// LogBuild logs the quality matrix build.
func (l *Logger) LogBuild(ctx context.Context, events int, builder string, workers int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "quality matrix build failed",
			"events", events,
			"builder", builder,
			"workers", workers,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "quality matrix built",
		"events", events,
		"builder", builder,
		"workers", workers,
		"elapsed", elapsed,
	)
}

// LogSearch logs the outcome of a tabu search.
func (l *Logger) LogSearch(ctx context.Context, iterations, selected int, bestScore float64, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "tabu search failed",
			"iterations", iterations,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "tabu search completed",
		"iterations", iterations,
		"selected", selected,
		"best_score", bestScore,
		"elapsed", elapsed,
	)
}

// LogTracePersisted logs the trace upload.
func (l *Logger) LogTracePersisted(ctx context.Context, name string, records int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "trace persist failed",
			"name", name,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "trace persisted",
		"name", name,
		"records", records,
	)
}
