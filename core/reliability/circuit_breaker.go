// Package reliability implements the circuit breaker and retry policies the
// Tracker Client (C4) composes over every call to the external ad tracker
// (spec §4.6), grounded on the circuit-breaker/bulkhead/retry composition in
// other_examples' kvishalv-reliable-orders order service, stripped of its
// OpenTelemetry span instrumentation (spec §1 Non-goals: observability
// wiring).
package reliability

import (
	"errors"
	"sync"
	"time"
)

// CircuitState is the three-state machine a CircuitBreaker moves through.
type CircuitState int

// Circuit states, lowest blast-radius first.
const (
	StateClosed CircuitState = iota
	StateOpen
	StateHalfOpen
)

// ErrCircuitOpen is returned immediately by Execute while the breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreaker trips after a run of consecutive failures and fails fast
// until a cooldown elapses, then allows a single probe call through.
type CircuitBreaker struct {
	mu               sync.Mutex
	state            CircuitState
	failureThreshold int
	cooldown         time.Duration
	consecutiveFails int
	openedAt         time.Time
}

// NewCircuitBreaker builds a breaker that opens after failureThreshold
// consecutive failures and stays open for cooldown before probing again.
func NewCircuitBreaker(failureThreshold int, cooldown time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		state:            StateClosed,
		failureThreshold: failureThreshold,
		cooldown:         cooldown,
	}
}

// Execute runs fn if the breaker permits it, updating state from the outcome.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if !cb.allow() {
		return ErrCircuitOpen
	}

	err := fn()
	cb.record(err)
	return err
}

func (cb *CircuitBreaker) allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateOpen:
		if time.Since(cb.openedAt) >= cb.cooldown {
			cb.state = StateHalfOpen
			return true
		}
		return false
	case StateHalfOpen:
		return false
	default:
		return true
	}
}

func (cb *CircuitBreaker) record(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err == nil {
		cb.consecutiveFails = 0
		cb.state = StateClosed
		return
	}

	cb.consecutiveFails++
	if cb.state == StateHalfOpen || cb.consecutiveFails >= cb.failureThreshold {
		cb.state = StateOpen
		cb.openedAt = time.Now()
	}
}

// State reports the breaker's current state, for readiness/diagnostic use.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}
