package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a failure as transient. The registry client wraps
// transport errors and 5xx responses with it; everything else (404s, bad
// JSON, exhausted contexts) is permanent and surfaces immediately.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Backoff is a retry schedule: up to Attempts tries, waiting Delay before
// the second try and doubling the wait after each further failure.
type Backoff struct {
	Attempts int
	Delay    time.Duration
}

// DefaultBackoff is the schedule applied to registry fetches.
var DefaultBackoff = Backoff{Attempts: 3, Delay: time.Second}

// Do runs fn under the schedule. Only errors wrapped in [RetryableError]
// are tried again; any other error is returned as-is after the first call.
// Waiting between attempts ends early when ctx is done, in which case
// ctx.Err() is returned.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay

	var lastErr error
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !errors.As(err, new(*RetryableError)) {
			return err
		}
		lastErr = err

		if attempt == attempts {
			return lastErr
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
}

// RetryWithBackoff runs fn under [DefaultBackoff].
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return DefaultBackoff.Do(ctx, fn)
}
