package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound reports that a requested entry does not exist.
	ErrNotFound = errors.New("not found")

	// ErrBackend reports a backend failure (timeout, connection error) on
	// one of the networked caches.
	ErrBackend = errors.New("cache backend error")
)

// RetryableError marks an error as transient: RetryWithBackoff retries the
// operation, anything unwrapped aborts it.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable marks err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err carries a RetryableError anywhere in its
// chain.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

const (
	retryAttempts  = 3
	retryBaseDelay = time.Second
)

// RetryWithBackoff runs fn, retrying transient failures with exponential
// backoff (1s, 2s) up to three attempts total. A non-retryable error or a
// cancelled context ends the loop immediately. The Redis and Mongo backends
// use it to ride out connection drops.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := retryBaseDelay

	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) {
			return err
		}
		if attempt == retryAttempts {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
}
