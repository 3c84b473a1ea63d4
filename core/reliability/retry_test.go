package reliability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryDoSucceedsWithoutRetrying(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 10 * time.Millisecond}

	calls := 0
	err := policy.Do(context.Background(), nil, func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryDoExhaustsAttemptsOnRetryableError(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 10 * time.Millisecond}
	retryable := errors.New("transient")

	calls := 0
	err := policy.Do(context.Background(), func(error) bool { return true }, func(ctx context.Context) error {
		calls++
		return retryable
	})

	assert.ErrorIs(t, err, retryable)
	assert.Equal(t, 3, calls)
}

func TestRetryDoStopsEarlyOnTerminalError(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 5, BaseDelay: time.Millisecond, MaxDelay: 10 * time.Millisecond}
	terminal := errors.New("not found")

	calls := 0
	err := policy.Do(context.Background(), func(error) bool { return false }, func(ctx context.Context) error {
		calls++
		return terminal
	})

	assert.ErrorIs(t, err, terminal)
	assert.Equal(t, 1, calls)
}

func TestRetryDoStopsWhenContextCancelled(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 5, BaseDelay: 50 * time.Millisecond, MaxDelay: time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := policy.Do(ctx, func(error) bool { return true }, func(ctx context.Context) error {
		calls++
		if calls == 1 {
			cancel()
		}
		return errors.New("transient")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRetryDelayCapsAtMaxDelay(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 10, BaseDelay: time.Second, MaxDelay: 3 * time.Second}

	assert.Equal(t, time.Second, policy.delay(1))
	assert.Equal(t, 2*time.Second, policy.delay(2))
	assert.Equal(t, 3*time.Second, policy.delay(3))
	assert.Equal(t, 3*time.Second, policy.delay(4))
}
