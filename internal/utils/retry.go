package utils

import (
	"context"
	"fmt"
	"time"

	"homework-notifier/internal/logging"
)

// Retry calls fn up to maxAttempts times, waiting delay between attempts.
// It is meant for startup steps only; the poll loop itself never retries inline.
func Retry(ctx context.Context, logger *logging.Logger, what string, maxAttempts int, delay time.Duration, fn func(context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err
		logger.Warnf("%s: attempt %d/%d failed: %v", what, attempt, maxAttempts, err)
		if attempt == maxAttempts {
			break
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%s: %w", what, ctx.Err())
		case <-timer.C:
		}
	}
	return fmt.Errorf("%s failed after %d attempts: %w", what, maxAttempts, lastErr)
}
