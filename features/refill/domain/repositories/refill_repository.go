package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/RodolfoBonis/spooliq/features/refill/domain/entities"
	"github.com/google/uuid"
)

// ErrRecentRefillExists is returned when a child refill was created within
// the idempotency window (spec §4.7 step 4).
var ErrRecentRefillExists = errors.New("refill: recent refill exists within idempotency window")

// ErrMaxRefillsExceeded is returned when the parent already has the maximum
// number of completed refills (spec §4.7 step 5).
var ErrMaxRefillsExceeded = errors.New("refill: parent has reached the maximum refill count")

// ErrNonTerminalSibling is returned when a sibling refill is still in a
// non-terminal state (spec §4.7 step 3).
var ErrNonTerminalSibling = errors.New("refill: a sibling refill is still in progress")

// RefillRepository persists the refill audit trail and resolves the next
// refill number for a parent order.
type RefillRepository interface {
	// CountCompletedRefills returns how many completed refill children the
	// parent already has.
	CountCompletedRefills(ctx context.Context, parentID uuid.UUID) (int, error)

	// HasNonTerminalRefill reports whether any refill child of the parent is
	// still non-terminal.
	HasNonTerminalRefill(ctx context.Context, parentID uuid.UUID) (bool, error)

	// MostRecentRefillAt returns the creation time of the parent's most
	// recent refill row created at or after since, or nil if there is none.
	MostRecentRefillAt(ctx context.Context, parentID uuid.UUID, since time.Time) (*time.Time, error)

	// NextRefillNumber returns max(existing refillNumber)+1 for the parent.
	NextRefillNumber(ctx context.Context, parentID uuid.UUID) (int, error)

	// CreateRefillRecord inserts the OrderRefill audit row. Callers are
	// expected to have already created the child order in the same logical
	// operation (spec §4.7 steps 11-12).
	CreateRefillRecord(ctx context.Context, record *entities.OrderRefillEntity) error
}
