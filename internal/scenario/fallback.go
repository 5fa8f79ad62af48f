package scenario

import (
	"context"
	"log/slog"
)

// WithFallback runs the primary path and, on any error, returns the
// result of the pure fallback instead. The primary's failure is logged
// and absorbed; callers only ever see a usable result. Both the
// descriptor synthesis and impact generation chains are instances of
// this pattern.
func WithFallback[T any](ctx context.Context, logger *slog.Logger, name string, primary func(context.Context) (T, error), fallback func() T) T {
	result, err := primary(ctx)
	if err != nil {
		logger.Warn("primary path failed, using deterministic fallback",
			"path", name,
			"error", err)
		return fallback()
	}
	return result
}
