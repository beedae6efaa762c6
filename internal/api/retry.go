package api

import (
	"context"
	"time"
)

// RetryPolicy configures the backoff applied between attempts of a
// single request.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, counting the first.
	MaxAttempts int
	// BaseDelay is the delay before the second attempt.
	BaseDelay time.Duration
	// MaxDelay caps the exponential growth.
	MaxDelay time.Duration
}

// DefaultRetryPolicy returns the default policy: three attempts with
// delays of min(1s * 2^attempt, 10s).
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		MaxDelay:    10 * time.Second,
	}
}

// Delay returns the backoff after the given zero-based attempt.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	// Large attempt counts would overflow the shift.
	if attempt >= 20 {
		return p.MaxDelay
	}
	delay := p.BaseDelay << uint(attempt)
	if delay > p.MaxDelay || delay <= 0 {
		delay = p.MaxDelay
	}
	return delay
}

// Wait sleeps for the attempt's backoff, or returns early if the
// context is cancelled.
func (p RetryPolicy) Wait(ctx context.Context, attempt int) error {
	timer := time.NewTimer(p.Delay(attempt))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
