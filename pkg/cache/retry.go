package cache

import (
	"context"
	"errors"
	"time"
)

// transientError marks a backend failure worth retrying, such as a refused
// connection while Redis is still starting.
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// retry runs fn up to attempts times, doubling delay after each failure.
// Only errors wrapped in transientError are retried. It returns the last
// error, or ctx.Err() if ctx ends while waiting.
func retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !errors.As(err, new(*transientError)) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return errors.Unwrap(lastErr)
}
