// Package retry implements bounded exponential backoff with jitter. It knows
// nothing about the operations it retries. Whether an error is worth another
// attempt is decided by the Retryable predicate of the Policy.
package retry

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

// Policy describes how an operation is retried.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first one.
	// Values smaller than 1 are treated as 1.
	MaxAttempts int

	// BaseDelay is the delay after the first failed attempt. Every following
	// delay is twice the previous one. A random jitter in [0, BaseDelay) is
	// added to each delay.
	BaseDelay time.Duration

	// MaxDelay caps every single delay, jitter included. Zero means no cap.
	MaxDelay time.Duration

	// Retryable reports whether an error is worth another attempt. When nil
	// no error is retried.
	Retryable func(error) bool

	// Sleep waits for d or until ctx is done. Defaults to SleepContext. Tests
	// replace it so that nothing actually sleeps.
	Sleep func(ctx context.Context, d time.Duration) error

	// Jitter returns a random duration in [0, n). Defaults to a uniform
	// random value.
	Jitter func(n time.Duration) time.Duration
}

// ExhaustedError is returned when all attempts of a Policy failed with a
// retryable error. It unwraps to the last error.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("giving up after %d attempts: %s", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// Do runs op until it succeeds, returns a non-retryable error or the attempts
// of the policy are used up. In the last case the returned error is an
// *ExhaustedError wrapping the error of the last attempt.
func Do[T any](
	ctx context.Context,
	p Policy,
	op func(ctx context.Context) (T, error),
) (T, error) {
	attempts := max(p.MaxAttempts, 1)

	var (
		res T
		err error
	)
	for attempt := 1; attempt <= attempts; attempt++ {
		res, err = op(ctx)
		if err == nil {
			return res, nil
		}

		if p.Retryable == nil || !p.Retryable(err) {
			return res, err
		}

		if attempt == attempts {
			break
		}

		if serr := p.sleep(ctx, p.Delay(attempt)); serr != nil {
			return res, fmt.Errorf("waiting before retry: %w (last error: %w)", serr, err)
		}
	}

	return res, &ExhaustedError{Attempts: attempts, Err: err}
}

// Delay returns how long to wait after the failed attempt number `attempt`,
// counting from 1.
func (p Policy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	delay := p.BaseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if p.MaxDelay > 0 && delay >= p.MaxDelay {
			return p.MaxDelay
		}
	}

	if p.BaseDelay > 0 {
		delay += p.jitter(p.BaseDelay)
	}

	if p.MaxDelay > 0 && delay > p.MaxDelay {
		return p.MaxDelay
	}

	return delay
}

func (p Policy) sleep(ctx context.Context, d time.Duration) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}
	return SleepContext(ctx, d)
}

func (p Policy) jitter(n time.Duration) time.Duration {
	if p.Jitter != nil {
		return p.Jitter(n)
	}
	return rand.N(n)
}

// SleepContext waits for d or until ctx is done, whichever comes first.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
