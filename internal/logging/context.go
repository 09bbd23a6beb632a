package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEventType classifies a log line for filtering (e.g. "game_skipped").
	FieldEventType = "event_type"
	// FieldErrorHint tells the operator what to do next.
	FieldErrorHint = "error_hint"
	// FieldRunID is the standardized structured logging key for analyze run identifiers.
	FieldRunID = "run_id"
	// FieldBucket is the provenance bucket (win/loss/draw) of the game being handled.
	FieldBucket = "bucket"
	// FieldSource identifies the game file being handled.
	FieldSource = "source"
	// FieldImpact is the user-facing consequence of a warning.
	FieldImpact = "impact"
)

type contextKey int

const (
	runIDKey contextKey = iota
	bucketKey
	sourceKey
)

// WithRunID returns a context carrying the analyze run identifier.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// RunIDFromContext returns the run identifier stored by WithRunID.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(runIDKey).(string)
	return id, ok && id != ""
}

// WithGame returns a context tagged with the bucket and source of one game.
func WithGame(ctx context.Context, bucket, source string) context.Context {
	ctx = context.WithValue(ctx, bucketKey, bucket)
	return context.WithValue(ctx, sourceKey, source)
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if id, ok := RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if bucket, ok := ctx.Value(bucketKey).(string); ok {
		fields = append(fields, slog.String(FieldBucket, bucket))
	}
	if source, ok := ctx.Value(sourceKey).(string); ok && source != "" {
		fields = append(fields, slog.String(FieldSource, source))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	args := make([]any, len(fields))
	for i, f := range fields {
		args[i] = f
	}
	return logger.With(args...)
}
