package logger

import (
	"context"
	"log/slog"
)

type runIDKey struct{}

// WithRunID stores a pipeline run id in ctx so every log line carries it.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunIDFromContext returns the run id stored by WithRunID.
func RunIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

// RunIDExtractor adds "run_id" to records logged with a run-scoped context.
func RunIDExtractor() ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := RunIDFromContext(ctx); id != "" {
			return slog.String("run_id", id), true
		}
		return slog.Attr{}, false
	}
}
