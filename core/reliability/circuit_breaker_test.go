package reliability

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreakerOpensAfterThreshold(t *testing.T) {
	cb := NewCircuitBreaker(3, time.Minute)
	failing := errors.New("upstream down")

	for i := 0; i < 2; i++ {
		err := cb.Execute(func() error { return failing })
		require.ErrorIs(t, err, failing)
		assert.Equal(t, StateClosed, cb.State())
	}

	err := cb.Execute(func() error { return failing })
	require.ErrorIs(t, err, failing)
	assert.Equal(t, StateOpen, cb.State())
}

func TestCircuitBreakerFailsFastWhileOpen(t *testing.T) {
	cb := NewCircuitBreaker(1, time.Minute)

	_ = cb.Execute(func() error { return errors.New("boom") })
	require.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called, "fn must not run while the breaker is open")
}

func TestCircuitBreakerHalfOpenProbeClosesOnSuccess(t *testing.T) {
	cb := NewCircuitBreaker(1, time.Millisecond)

	_ = cb.Execute(func() error { return errors.New("boom") })
	require.Equal(t, StateOpen, cb.State())

	time.Sleep(5 * time.Millisecond)

	err := cb.Execute(func() error { return nil })
	assert.NoError(t, err)
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreakerHalfOpenProbeReopensOnFailure(t *testing.T) {
	cb := NewCircuitBreaker(1, time.Millisecond)

	_ = cb.Execute(func() error { return errors.New("boom") })
	time.Sleep(5 * time.Millisecond)

	err := cb.Execute(func() error { return errors.New("still down") })
	assert.Error(t, err)
	assert.Equal(t, StateOpen, cb.State())
}
