package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ironsmile/artframe/src/assert"
	"github.com/ironsmile/artframe/src/retry"
)

var (
	errTemporary = errors.New("temporary")
	errTerminal  = errors.New("terminal")
)

func isTemporary(err error) bool {
	return errors.Is(err, errTemporary)
}

// fakeClock records the requested delays without sleeping.
type fakeClock struct {
	delays []time.Duration
}

func (c *fakeClock) Sleep(_ context.Context, d time.Duration) error {
	c.delays = append(c.delays, d)
	return nil
}

func newPolicy(clock *fakeClock, attempts int) retry.Policy {
	return retry.Policy{
		MaxAttempts: attempts,
		BaseDelay:   100 * time.Millisecond,
		MaxDelay:    time.Second,
		Retryable:   isTemporary,
		Sleep:       clock.Sleep,
		Jitter:      func(time.Duration) time.Duration { return 0 },
	}
}

// TestDoExhaustion makes sure an always failing operation is called exactly
// MaxAttempts times and that the last error is returned.
func TestDoExhaustion(t *testing.T) {
	clock := &fakeClock{}
	calls := 0

	_, err := retry.Do(context.Background(), newPolicy(clock, 3),
		func(context.Context) (int, error) {
			calls++
			return 0, errTemporary
		},
	)

	assert.Equal(t, 3, calls, "wrong number of calls")
	assert.ErrorIs(t, err, errTemporary)

	var exhausted *retry.ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected *retry.ExhaustedError but got %T", err)
	}
	assert.Equal(t, 3, exhausted.Attempts)

	expectedDelays := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}
	if len(clock.delays) != len(expectedDelays) {
		t.Fatalf("expected %d sleeps but got %v", len(expectedDelays), clock.delays)
	}
	for i, d := range expectedDelays {
		assert.Equal(t, d, clock.delays[i], "delay %d", i)
	}
}

// TestDoTerminalError checks that a non-retryable error aborts immediately.
func TestDoTerminalError(t *testing.T) {
	clock := &fakeClock{}
	calls := 0

	_, err := retry.Do(context.Background(), newPolicy(clock, 5),
		func(context.Context) (string, error) {
			calls++
			if calls == 1 {
				return "", errTemporary
			}
			return "", errTerminal
		},
	)

	assert.Equal(t, 2, calls)
	if err != errTerminal {
		t.Errorf("expected the terminal error unchanged but got %v", err)
	}
	assert.Equal(t, 1, len(clock.delays))
}

// TestDoSucceedsAfterRetries checks that the result of the first successful
// attempt is returned.
func TestDoSucceedsAfterRetries(t *testing.T) {
	clock := &fakeClock{}
	calls := 0

	res, err := retry.Do(context.Background(), newPolicy(clock, 4),
		func(context.Context) (string, error) {
			calls++
			if calls < 3 {
				return "", errTemporary
			}
			return "done", nil
		},
	)

	assert.NilErr(t, err)
	assert.Equal(t, "done", res)
	assert.Equal(t, 3, calls)
}

// TestDoNilPredicate makes sure nothing is retried without a predicate.
func TestDoNilPredicate(t *testing.T) {
	calls := 0
	_, err := retry.Do(context.Background(), retry.Policy{MaxAttempts: 3},
		func(context.Context) (int, error) {
			calls++
			return 0, errTemporary
		},
	)
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, errTemporary)
}

// TestDoCancelledWhileWaiting makes sure a cancelled context stops the retries.
func TestDoCancelledWhileWaiting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := retry.Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Hour,
		Retryable:   isTemporary,
	}

	calls := 0
	_, err := retry.Do(ctx, p, func(context.Context) (int, error) {
		calls++
		return 0, errTemporary
	})

	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, errTemporary)
}

// TestPolicyDelay checks the exponential growth, the jitter and the cap.
func TestPolicyDelay(t *testing.T) {
	tests := []struct {
		desc     string
		attempt  int
		jitter   time.Duration
		expected time.Duration
	}{
		{"first attempt", 1, 0, 100 * time.Millisecond},
		{"second attempt", 2, 0, 200 * time.Millisecond},
		{"third attempt with jitter", 3, 50 * time.Millisecond, 450 * time.Millisecond},
		{"capped", 5, 0, time.Second},
		{"capped with jitter", 4, 250 * time.Millisecond, time.Second},
		{"just under the cap", 4, 99 * time.Millisecond, 899 * time.Millisecond},
		{"way over the cap", 60, 0, time.Second},
		{"zero attempt is the first", 0, 0, 100 * time.Millisecond},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			p := retry.Policy{
				BaseDelay: 100 * time.Millisecond,
				MaxDelay:  time.Second,
				Jitter: func(n time.Duration) time.Duration {
					if n != 100*time.Millisecond {
						t.Errorf("jitter range should be the base delay, got %s", n)
					}
					return test.jitter
				},
			}
			assert.Equal(t, test.expected, p.Delay(test.attempt))
		})
	}
}

// TestPolicyDefaultJitterRange makes sure the default jitter stays within
// [0, BaseDelay).
func TestPolicyDefaultJitterRange(t *testing.T) {
	p := retry.Policy{BaseDelay: 10 * time.Millisecond}
	for i := 0; i < 1000; i++ {
		d := p.Delay(1)
		if d < 10*time.Millisecond || d >= 20*time.Millisecond {
			t.Fatalf("delay %s outside of [10ms, 20ms)", d)
		}
	}
}
