// Package entities holds the Order Store component's (C2) domain types:
// the order aggregate, its status state machine, and its append-only
// event log (spec §3.1 Order, OrderEvent; §4.2).
package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status enumerates Order.status (spec §3.1, §4.2).
type Status string

// Order statuses.
const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusActive     Status = "ACTIVE"
	StatusPartial    Status = "PARTIAL"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
	StatusPaused     Status = "PAUSED"
	StatusHolding    Status = "HOLDING"
	StatusError      Status = "ERROR"
	StatusRefill     Status = "REFILL"
)

// terminal holds the statuses an order never leaves.
var terminal = map[Status]bool{
	StatusCompleted: true,
	StatusCancelled: true,
}

// IsTerminal reports whether s is a terminal status (spec §3.2).
func (s Status) IsTerminal() bool { return terminal[s] }

// transitions enumerates the state machine's permitted edges (spec §4.2).
// Edges into HOLDING are not listed here; CanTransition permits them from
// any non-terminal state.
var transitions = map[Status]map[Status]bool{
	StatusPending:    {StatusProcessing: true, StatusCancelled: true, StatusError: true},
	StatusProcessing: {StatusInProgress: true, StatusError: true},
	StatusInProgress: {StatusActive: true, StatusError: true},
	StatusActive:     {StatusPartial: true, StatusCompleted: true, StatusPaused: true, StatusError: true},
	StatusPartial:    {StatusCompleted: true},
	StatusPaused:     {StatusActive: true},
	StatusError:      {StatusCancelled: true},
	StatusHolding:    {}, // no edge out of HOLDING is permitted
}

// CanTransition reports whether from → to is a permitted edge. HOLDING may
// be entered from any non-terminal status; no transition out of HOLDING is
// permitted, and the status held before entry is not recorded. Staying in
// the current status is always permitted: it is not a status transition and
// lets a caller (e.g. the reconciler or result ingress) persist updated
// counters without forcing a status change.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	if to == StatusHolding {
		return !from.IsTerminal()
	}
	if allowed, ok := transitions[from]; ok {
		return allowed[to]
	}
	return false
}

// TrafficStatus enumerates Order.trafficStatus.
type TrafficStatus string

// Traffic statuses.
const (
	TrafficNone      TrafficStatus = "NONE"
	TrafficRunning   TrafficStatus = "RUNNING"
	TrafficDelivered TrafficStatus = "DELIVERED"
)

// OrderEntity is the order aggregate root (spec §3.1).
type OrderEntity struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	ServiceID       int64
	Link            string
	Quantity        int64
	Charge          decimal.Decimal
	StartCount      int64
	Remains         int64
	Status          Status
	YoutubeVideoID  *string
	Coefficient     decimal.Decimal
	TargetCountry   *string
	BudgetLimit     *decimal.Decimal
	CostIncurred    decimal.Decimal
	ViewsDelivered  int64
	TrafficStatus   TrafficStatus
	IsRefill        bool
	RefillParentID  *uuid.UUID
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ValidRemains reports the invariant 0 ≤ remains ≤ quantity (spec §3.1).
func (o *OrderEntity) ValidRemains() bool {
	return o.Remains >= 0 && o.Remains <= o.Quantity
}

// EventType enumerates OrderEvent.type.
type EventType string

// Event types.
const (
	EventStatusChanged  EventType = "STATUS_CHANGED"
	EventAssigned       EventType = "CAMPAIGN_ASSIGNED"
	EventReconciled     EventType = "RECONCILED"
	EventRefillCreated  EventType = "REFILL_CREATED"
)

// OrderEventEntity is the immutable append-only audit row written atomically
// with every status change (spec §3.1, §4.2).
type OrderEventEntity struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	Type      EventType
	OldStatus Status
	NewStatus Status
	Payload   map[string]interface{}
	CreatedAt time.Time
}
