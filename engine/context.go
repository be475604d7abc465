package engine

import "context"

// Context keys for run options
type contextKey string

const (
	suppressProgressKey contextKey = "suppressProgress"
	runIDKey            contextKey = "runID"
)

// WithSuppressProgress disables per-check progress lines for runs driven by
// an outer orchestrator, such as suite batches.
func WithSuppressProgress(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressProgressKey, true)
}

// shouldSuppressProgress returns whether progress output is suppressed.
func shouldSuppressProgress(ctx context.Context) bool {
	val := ctx.Value(suppressProgressKey)
	if val == nil {
		return false // default: show progress
	}
	suppress, ok := val.(bool)
	return ok && suppress
}

// WithRunID attaches a preassigned run identifier to the context. Suite
// batches use this to hand each benchmark a stable member identifier.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// runIDFrom returns the run identifier from the context, if any.
func runIDFrom(ctx context.Context) (string, bool) {
	val := ctx.Value(runIDKey)
	if val == nil {
		return "", false
	}
	id, ok := val.(string)
	return id, ok && id != ""
}
