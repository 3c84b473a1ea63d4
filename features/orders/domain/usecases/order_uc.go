// Package usecases implements the Order Store's (C2) exposed operations:
// creation and status transitions, all routed through the state machine in
// domain/entities (spec §4.2).
package usecases

import (
	"context"
	"errors"
	"time"

	coreerrors "github.com/RodolfoBonis/spooliq/core/errors"
	"github.com/RodolfoBonis/spooliq/core/logger"
	"github.com/RodolfoBonis/spooliq/features/orders/domain/entities"
	"github.com/RodolfoBonis/spooliq/features/orders/domain/repositories"
	"github.com/google/uuid"
)

// OrderUseCase is the C2 surface consumed by C6 (create), C7/C8/C9/C10/C11
// (transitions).
type OrderUseCase interface {
	Create(ctx context.Context, order *entities.OrderEntity) error
	FindByID(ctx context.Context, orderID uuid.UUID) (*entities.OrderEntity, error)

	// Transition loads the order, applies fn to compute the next field
	// values and returns the new status, and persists atomically with the
	// OrderEvent row. Any error fn returns aborts the transition.
	Transition(ctx context.Context, orderID uuid.UUID, eventType entities.EventType, fn func(*entities.OrderEntity) (entities.Status, error)) error

	ListActiveForReconciliation(ctx context.Context, statuses []entities.Status, limit, offset int) ([]*entities.OrderEntity, error)
}

type orderUseCase struct {
	repo repositories.OrderRepository
	log  logger.Logger
}

// NewOrderUseCase wires the order repository behind its use case.
func NewOrderUseCase(repo repositories.OrderRepository, log logger.Logger) OrderUseCase {
	return &orderUseCase{repo: repo, log: log}
}

func (uc *orderUseCase) Create(ctx context.Context, order *entities.OrderEntity) error {
	if order.Status == "" {
		order.Status = entities.StatusPending
	}
	if !order.ValidRemains() {
		return coreerrors.ValidationError("order remains outside [0, quantity]")
	}
	return uc.repo.Create(ctx, order)
}

func (uc *orderUseCase) FindByID(ctx context.Context, orderID uuid.UUID) (*entities.OrderEntity, error) {
	return uc.repo.FindByID(ctx, orderID)
}

// Transition retries once on a version conflict (the transition read is
// cheap and the caller-supplied fn is expected to be pure), then surfaces
// an invalid edge as a caller-visible validation error rather than retrying
// it, since retrying cannot make an illegal edge legal.
func (uc *orderUseCase) Transition(ctx context.Context, orderID uuid.UUID, eventType entities.EventType, fn func(*entities.OrderEntity) (entities.Status, error)) error {
	const maxAttempts = 2

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		order, err := uc.repo.FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		expectedVersion := order.Version
		err = uc.repo.ApplyTransition(ctx, orderID, expectedVersion, func(o *entities.OrderEntity) (*entities.OrderEventEntity, error) {
			oldStatus := o.Status
			newStatus, fnErr := fn(o)
			if fnErr != nil {
				return nil, fnErr
			}
			o.Status = newStatus

			return &entities.OrderEventEntity{
				ID:        uuid.New(),
				OrderID:   orderID,
				Type:      eventType,
				OldStatus: oldStatus,
				NewStatus: newStatus,
				CreatedAt: time.Now(),
			}, nil
		})

		if err == nil {
			return nil
		}

		if errors.Is(err, repositories.ErrInvalidTransition) {
			return coreerrors.ValidationError("invalid order status transition", map[string]interface{}{"order_id": orderID})
		}

		if !errors.Is(err, repositories.ErrVersionConflict) {
			lastErr = err
			break
		}
		lastErr = err
	}

	return lastErr
}

func (uc *orderUseCase) ListActiveForReconciliation(ctx context.Context, statuses []entities.Status, limit, offset int) ([]*entities.OrderEntity, error) {
	return uc.repo.ListActiveForReconciliation(ctx, statuses, limit, offset)
}
