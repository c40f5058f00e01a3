// Package retry wraps outbound calls with a bounded exponential backoff.
//
// The default policy makes three attempts and sleeps 1s then 2s between them,
// without jitter. Once every attempt has failed the final error is returned
// wrapped in an errs.RetryExhaustedError, so callers can match both the retry
// sentinel and the original cause with errors.Is.
//
// Example:
//
//	result, err := retry.Do(ctx, retry.DefaultPolicy(), func(ctx context.Context) (ShipmentResult, error) {
//	    return client.createShipment(ctx, request)
//	})
package retry

import (
	"context"
	"time"

	"fulfillment/internal/pkg/errs"
)

const (
	DefaultAttempts     = 3
	DefaultInitialDelay = 1000 * time.Millisecond
	DefaultMultiplier   = 2
)

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Policy describes how many times a call is attempted and how long to wait between attempts.
type Policy struct {
	Attempts     int
	InitialDelay time.Duration
	Multiplier   int
	Sleep        SleepFunc
}

// DefaultPolicy returns the carrier retry policy: 3 attempts, 1000ms doubling delay.
func DefaultPolicy() Policy {
	return Policy{
		Attempts:     DefaultAttempts,
		InitialDelay: DefaultInitialDelay,
		Multiplier:   DefaultMultiplier,
		Sleep:        ContextSleep,
	}
}

// ContextSleep waits for d, returning early with ctx.Err() on cancellation.
func ContextSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Do calls fn until it succeeds or the policy runs out of attempts.
// There is no sleep after the last attempt.
func Do[T any](ctx context.Context, policy Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	attempts := policy.Attempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := policy.Sleep
	if sleep == nil {
		sleep = ContextSleep
	}
	multiplier := policy.Multiplier
	if multiplier < 1 {
		multiplier = 1
	}

	delay := policy.InitialDelay
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == attempts {
			break
		}
		if sleepErr := sleep(ctx, delay); sleepErr != nil {
			return zero, errs.NewRetryExhaustedError(attempt, lastErr)
		}
		delay *= time.Duration(multiplier)
	}

	return zero, errs.NewRetryExhaustedError(attempts, lastErr)
}
