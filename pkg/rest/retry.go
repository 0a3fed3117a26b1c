package rest

import (
	"context"
	"time"
)

// Retry runs fn up to maxRetries times. The delay between attempts starts at
// delay and doubles after each failure, with no jitter. Attempts are strictly
// sequential; the last error is returned after exhausting all attempts.
func Retry[T any](ctx context.Context, maxRetries int, delay time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	wait := delay
	for attempt := 1; attempt <= maxRetries; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
	}

	return zero, lastErr
}
