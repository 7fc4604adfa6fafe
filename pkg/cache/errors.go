package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks a backend that could not be reached.
var ErrNetwork = errors.New("cache backend unreachable")

// RetryableError marks a transient failure worth another attempt.
type RetryableError struct{ Err error }

// Retryable wraps err as transient. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err, or anything it wraps, is a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff describes a retry schedule: Attempts tries, waiting Delay before
// the second and doubling after each failure.
type Backoff struct {
	Attempts int
	Delay    time.Duration
}

// DefaultBackoff is used when connecting to Redis.
var DefaultBackoff = Backoff{Attempts: 3, Delay: 250 * time.Millisecond}

// RetryWithBackoff runs fn under DefaultBackoff.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return DefaultBackoff.Retry(ctx, fn)
}

// Retry calls fn until it succeeds, returns a non-retryable error, the
// attempts run out, or ctx is done.
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay

	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return err
}
