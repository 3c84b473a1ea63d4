package repositories

import (
	"context"
	"errors"

	"github.com/RodolfoBonis/spooliq/features/orders/domain/entities"
	"github.com/google/uuid"
)

// ErrVersionConflict is returned by ApplyTransition when expectedVersion no
// longer matches the stored row.
var ErrVersionConflict = errors.New("orders: version conflict")

// ErrInvalidTransition is returned by ApplyTransition when oldStatus → event.NewStatus
// is not a permitted edge (spec §4.2).
var ErrInvalidTransition = errors.New("orders: invalid transition")

// OrderRepository persists orders and their event log.
type OrderRepository interface {
	Create(ctx context.Context, order *entities.OrderEntity) error
	FindByID(ctx context.Context, orderID uuid.UUID) (*entities.OrderEntity, error)

	// ApplyTransition validates event.OldStatus/NewStatus against the
	// current stored status and expectedVersion, writes the new status plus
	// any touched counters, and appends the OrderEvent row atomically.
	ApplyTransition(ctx context.Context, orderID uuid.UUID, expectedVersion int64, mutate func(*entities.OrderEntity) (*entities.OrderEventEntity, error)) error

	// ListActiveForReconciliation returns a page of orders in a
	// reconciliation-eligible status, ordered for batch processing (spec §4.6).
	ListActiveForReconciliation(ctx context.Context, statuses []entities.Status, limit, offset int) ([]*entities.OrderEntity, error)
}
