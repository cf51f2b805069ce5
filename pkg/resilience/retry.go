package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrRetryExhausted = errors.New("retry budget exhausted")

// RetryExhaustedError is returned once every attempt of a RetryPolicy failed.
type RetryExhaustedError struct {
	Attempts int
	Err      error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("%v after %d attempts: %v", ErrRetryExhausted, e.Attempts, e.Err)
}

func (e *RetryExhaustedError) Is(target error) bool {
	return target == ErrRetryExhausted
}

func (e *RetryExhaustedError) Unwrap() error {
	return e.Err
}

const (
	DefaultRetryAttempts = 3
	DefaultRetryBackoff  = 200 * time.Millisecond
)

// RetryPolicy is a bounded retry strategy with a fixed backoff between attempts.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration

	// Retryable decides whether an error is transient. Nil treats every error as transient.
	Retryable func(error) bool

	// OnRetry is called before sleeping ahead of the next attempt.
	OnRetry func(attempt int, err error)
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: DefaultRetryAttempts,
		Backoff:     DefaultRetryBackoff,
	}
}

// Do runs fn until it succeeds, fails with a non-retryable error, the context
// ends, or MaxAttempts is used up. Exhaustion yields a *RetryExhaustedError.
func (p RetryPolicy) Do(ctx context.Context, fn func(context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			return err
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}

		lastErr = err
		if attempt == attempts {
			break
		}
		if p.OnRetry != nil {
			p.OnRetry(attempt, err)
		}
		if !sleepWithContext(ctx, p.Backoff) {
			return ctx.Err()
		}
	}

	return &RetryExhaustedError{Attempts: attempts, Err: lastErr}
}

// sleepWithContext waits for delay or exits early if context is canceled.
func sleepWithContext(ctx context.Context, delay time.Duration) bool {
	if delay <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
