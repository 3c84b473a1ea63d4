// Package usecases implements the Refill Engine (C10): re-measures a
// completed order's delivered views and creates a zero-charge child order
// for the shortfall (spec §4.7).
package usecases

import (
	"context"
	"time"

	"github.com/RodolfoBonis/spooliq/core/bus"
	"github.com/RodolfoBonis/spooliq/core/cache"
	coreerrors "github.com/RodolfoBonis/spooliq/core/errors"
	"github.com/RodolfoBonis/spooliq/core/logger"
	orderentities "github.com/RodolfoBonis/spooliq/features/orders/domain/entities"
	orderusecases "github.com/RodolfoBonis/spooliq/features/orders/domain/usecases"
	refillentities "github.com/RodolfoBonis/spooliq/features/refill/domain/entities"
	"github.com/RodolfoBonis/spooliq/features/refill/domain/repositories"
	videorepo "github.com/RodolfoBonis/spooliq/features/video/domain/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// idempotencyWindow is the minimum spacing between refills of the same
// parent order (spec §4.7 step 4).
const idempotencyWindow = 60 * time.Second

// maxCompletedRefills caps how many completed refills a parent may
// accumulate (spec §4.7 step 5).
const maxCompletedRefills = 5

// refillSanityFactor bounds refillQty against runaway upstream counters
// (spec §4.7 step 9).
const refillSanityFactor = 1.5

var refillEligibleParentStatuses = map[orderentities.Status]bool{
	orderentities.StatusCompleted:  true,
	orderentities.StatusInProgress: true,
	orderentities.StatusPartial:    true,
}

// RefillUseCase is C10's single exposed operation.
type RefillUseCase interface {
	CreateRefill(ctx context.Context, originalOrderID uuid.UUID) (*refillentities.RefillResult, error)
}

type refillUseCase struct {
	refill repositories.RefillRepository
	orders orderusecases.OrderUseCase
	video  videorepo.VideoClient
	bus    *bus.Bus
	cache  *cache.Client
	log    logger.Logger
}

// NewRefillUseCase wires C10's collaborators.
func NewRefillUseCase(refill repositories.RefillRepository, orders orderusecases.OrderUseCase, video videorepo.VideoClient, b *bus.Bus, c *cache.Client, log logger.Logger) RefillUseCase {
	return &refillUseCase{refill: refill, orders: orders, video: video, bus: b, cache: c, log: log}
}

// CreateRefill runs spec §4.7's steps. No lock is taken on the parent order
// row, and the parent's version is neither read nor written: step 11 creates
// the child through orders.Create, a plain insert. The pre-checks therefore
// race a concurrent caller within a narrow window; the idempotency window
// (step 4) and the unique (originalOrderId, refillNumber) constraint
// (step 12) catch such a race.
func (uc *refillUseCase) CreateRefill(ctx context.Context, originalOrderID uuid.UUID) (*refillentities.RefillResult, error) {
	parent, err := uc.orders.FindByID(ctx, originalOrderID)
	if err != nil {
		return nil, err
	}

	if parent.IsRefill {
		return nil, coreerrors.ValidationError("cannot refill a refill order")
	}

	lockKey := "refill:lock:" + originalOrderID.String()
	acquired, err := uc.cache.AcquireLock(ctx, lockKey, idempotencyWindow)
	if err != nil {
		uc.log.LogError(ctx, "redis idempotency lock unavailable; falling back to the database check", err)
	} else if !acquired {
		return nil, coreerrors.ConflictError("a refill was already created within the idempotency window")
	}

	hasNonTerminal, err := uc.refill.HasNonTerminalRefill(ctx, originalOrderID)
	if err != nil {
		return nil, err
	}
	if hasNonTerminal {
		return nil, coreerrors.ConflictError("a sibling refill is still in progress")
	}

	recent, err := uc.refill.MostRecentRefillAt(ctx, originalOrderID, time.Now().Add(-idempotencyWindow))
	if err != nil {
		return nil, err
	}
	if recent != nil {
		return nil, coreerrors.ConflictError("a refill was already created within the idempotency window")
	}

	completedCount, err := uc.refill.CountCompletedRefills(ctx, originalOrderID)
	if err != nil {
		return nil, err
	}
	if completedCount >= maxCompletedRefills {
		return nil, coreerrors.ValidationError("parent order has reached the maximum refill count", map[string]interface{}{"order_id": originalOrderID})
	}

	if !refillEligibleParentStatuses[parent.Status] || parent.StartCount == 0 {
		return nil, coreerrors.ValidationError("parent order is not eligible for refill", map[string]interface{}{"status": parent.Status})
	}

	if parent.YoutubeVideoID == nil {
		return nil, coreerrors.UpstreamUnavailableError("parent order has no probed video to re-measure", nil)
	}
	currentViews, err := uc.video.ProbeViewCount(ctx, *parent.YoutubeVideoID)
	if err != nil {
		return nil, coreerrors.UpstreamUnavailableError("view count probe failed", err)
	}
	if currentViews == 0 {
		return nil, coreerrors.UpstreamUnavailableError("view count probe returned zero", nil)
	}

	delivered := int64(currentViews) - parent.StartCount
	if delivered < 0 {
		delivered = 0
	}
	refillQty := parent.Quantity - delivered

	if refillQty <= 0 {
		return nil, coreerrors.ValidationError("parent order has already delivered in full")
	}
	if float64(refillQty) > refillSanityFactor*float64(parent.Quantity) {
		return nil, coreerrors.ValidationError("refill quantity exceeds sanity bound; likely upstream counter error", map[string]interface{}{"refill_qty": refillQty, "parent_quantity": parent.Quantity})
	}

	refillNumber, err := uc.refill.NextRefillNumber(ctx, originalOrderID)
	if err != nil {
		return nil, err
	}

	child := &orderentities.OrderEntity{
		ID:             uuid.New(),
		UserID:         parent.UserID,
		ServiceID:      parent.ServiceID,
		Link:           parent.Link,
		Quantity:       refillQty,
		Charge:         decimal.Zero,
		StartCount:     0,
		Remains:        refillQty,
		Status:         orderentities.StatusPending,
		Coefficient:    parent.Coefficient,
		TargetCountry:  parent.TargetCountry,
		TrafficStatus:  orderentities.TrafficNone,
		IsRefill:       true,
		RefillParentID: &originalOrderID,
	}

	if err := uc.orders.Create(ctx, child); err != nil {
		return nil, err
	}

	record := &refillentities.OrderRefillEntity{
		ID:                 uuid.New(),
		OriginalOrderID:     originalOrderID,
		RefillOrderID:       child.ID,
		RefillNumber:        refillNumber,
		OriginalQuantity:    parent.Quantity,
		DeliveredQuantity:   delivered,
		RefillQuantity:      refillQty,
		StartCountAtRefill:  parent.StartCount,
	}
	if err := uc.refill.CreateRefillRecord(ctx, record); err != nil {
		uc.log.LogError(ctx, "failed to persist refill audit record after child order creation", err)
		return nil, err
	}

	env := bus.Envelope{
		OrderID:        child.ID.String(),
		TargetQuantity: uint32(child.Quantity),
		OriginalURL:    child.Link,
		CreatedAt:      time.Now(),
		MaxAttempts:    3,
	}
	if err := uc.bus.Publish(ctx, bus.TopicOrderCreated, env); err != nil {
		uc.log.LogError(ctx, "failed to publish order.created for refill child; relying on recovery sweep", err)
	}

	return &refillentities.RefillResult{
		RefillOrderID: child.ID,
		RefillNumber:  refillNumber,
		RefillQty:     refillQty,
	}, nil
}
