package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"pending to processing is allowed", StatusPending, StatusProcessing, true},
		{"pending to error is allowed for a pre-processing failure", StatusPending, StatusError, true},
		{"pending to active skips a step", StatusPending, StatusActive, false},
		{"processing to in_progress is allowed", StatusProcessing, StatusInProgress, true},
		{"active to completed is allowed", StatusActive, StatusCompleted, true},
		{"completed is terminal", StatusCompleted, StatusProcessing, false},
		{"any non-terminal status may enter holding", StatusActive, StatusHolding, true},
		{"a terminal status may not enter holding", StatusCompleted, StatusHolding, false},
		{"staying in the same status is always permitted", StatusActive, StatusActive, true},
		{"staying in a terminal status is still permitted", StatusCompleted, StatusCompleted, true},
		{"paused returns to active", StatusPaused, StatusActive, true},
		{"error only resolves to cancelled", StatusError, StatusCancelled, true},
		{"error cannot go back to active", StatusError, StatusActive, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanTransition(tc.from, tc.to))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusActive.IsTerminal())
	assert.False(t, StatusHolding.IsTerminal())
}

func TestValidRemains(t *testing.T) {
	order := &OrderEntity{Quantity: 100, Remains: 50}
	assert.True(t, order.ValidRemains())

	order.Remains = 150
	assert.False(t, order.ValidRemains())

	order.Remains = -1
	assert.False(t, order.ValidRemains())
}
