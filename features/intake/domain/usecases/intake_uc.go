// Package usecases implements Order Intake (C6): validate, price, debit,
// persist, publish — spec §4.4.
package usecases

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/RodolfoBonis/spooliq/core/bus"
	coreerrors "github.com/RodolfoBonis/spooliq/core/errors"
	"github.com/RodolfoBonis/spooliq/core/logger"
	catalogusecases "github.com/RodolfoBonis/spooliq/features/catalog/domain/usecases"
	ledgerentities "github.com/RodolfoBonis/spooliq/features/ledger/domain/entities"
	ledgerusecases "github.com/RodolfoBonis/spooliq/features/ledger/domain/usecases"
	orderentities "github.com/RodolfoBonis/spooliq/features/orders/domain/entities"
	orderusecases "github.com/RodolfoBonis/spooliq/features/orders/domain/usecases"
	"github.com/google/uuid"
)

// hostsByCategory whitelists the link hosts accepted per service category
// (spec §4.4 step 1: "URL matches service pattern"). A service's category
// determines which upstream platform its orders must target.
var hostsByCategory = map[string]map[string]bool{
	"YOUTUBE": {
		"youtube.com":     true,
		"www.youtube.com": true,
		"youtu.be":        true,
		"m.youtube.com":   true,
	},
	"INSTAGRAM": {
		"instagram.com":     true,
		"www.instagram.com": true,
	},
}

// PlaceOrderRequest is the validated input to PlaceOrder.
type PlaceOrderRequest struct {
	UserID    uuid.UUID
	ServiceID int64
	Link      string
	Quantity  int64
}

// IntakeUseCase is C6's exposed surface.
type IntakeUseCase interface {
	PlaceOrder(ctx context.Context, user *ledgerentities.UserEntity, req PlaceOrderRequest) (*orderentities.OrderEntity, error)

	// RecoverStalePending republishes order.created for PENDING orders older
	// than minAge, recovering from a step-5 publish failure (spec §4.4).
	// Idempotent: republishing an already-consumed order only costs the
	// video worker a redundant status-no-op transition attempt.
	RecoverStalePending(ctx context.Context, minAge time.Duration, batchSize int) (int, error)
}

type intakeUseCase struct {
	catalog catalogusecases.CatalogUseCase
	ledger  ledgerusecases.LedgerUseCase
	orders  orderusecases.OrderUseCase
	bus     *bus.Bus
	log     logger.Logger
}

// NewIntakeUseCase wires the catalog, ledger, order, and bus collaborators
// behind Order Intake's single operation.
func NewIntakeUseCase(catalog catalogusecases.CatalogUseCase, ledger ledgerusecases.LedgerUseCase, orders orderusecases.OrderUseCase, b *bus.Bus, log logger.Logger) IntakeUseCase {
	return &intakeUseCase{catalog: catalog, ledger: ledger, orders: orders, bus: b, log: log}
}

// PlaceOrder runs spec §4.4's five steps. Steps 1-4 debit-then-insert are
// compensated on failure (the debit is refunded if the order insert fails);
// step 5's publish failure is left for a periodic PENDING-age sweep to
// recover, since the order row already exists and the sweep is idempotent.
func (uc *intakeUseCase) PlaceOrder(ctx context.Context, user *ledgerentities.UserEntity, req PlaceOrderRequest) (*orderentities.OrderEntity, error) {
	if !user.Active || user.AccountLocked {
		return nil, coreerrors.ValidationError("user is inactive or locked")
	}

	service, charge, err := uc.catalog.PriceOrder(ctx, req.ServiceID, req.Quantity)
	if err != nil {
		return nil, err
	}

	if err := validateLink(service.Category, req.Link); err != nil {
		return nil, err
	}

	order := &orderentities.OrderEntity{
		ID:            uuid.New(),
		UserID:        req.UserID,
		ServiceID:     service.ID,
		Link:          req.Link,
		Quantity:      req.Quantity,
		Charge:        charge,
		StartCount:    0,
		Remains:       req.Quantity,
		Status:        orderentities.StatusPending,
		TrafficStatus: orderentities.TrafficNone,
	}

	if err := uc.ledger.Debit(ctx, req.UserID, charge, ledgerentities.KindOrderPayment, order.ID.String()); err != nil {
		return nil, err
	}

	if err := uc.orders.Create(ctx, order); err != nil {
		if refundErr := uc.ledger.Credit(ctx, req.UserID, charge, ledgerentities.KindRefund, order.ID.String()); refundErr != nil {
			uc.log.LogError(ctx, "failed to compensate debit after order insert failure", refundErr)
		}
		return nil, err
	}

	env := bus.Envelope{
		OrderID:        order.ID.String(),
		TargetQuantity: uint32(order.Quantity),
		OriginalURL:    order.Link,
		UserID:         0,
		CreatedAt:      time.Now(),
		MaxAttempts:    3,
	}
	if err := uc.bus.Publish(ctx, bus.TopicOrderCreated, env); err != nil {
		uc.log.LogError(ctx, "failed to publish order.created; relying on recovery sweep", err)
	}

	return order, nil
}

// RecoverStalePending scans PENDING orders and republishes order.created for
// any older than minAge.
func (uc *intakeUseCase) RecoverStalePending(ctx context.Context, minAge time.Duration, batchSize int) (int, error) {
	candidates, err := uc.orders.ListActiveForReconciliation(ctx, []orderentities.Status{orderentities.StatusPending}, batchSize, 0)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-minAge)
	recovered := 0
	for _, order := range candidates {
		if order.UpdatedAt.After(cutoff) {
			continue
		}

		env := bus.Envelope{
			OrderID:        order.ID.String(),
			TargetQuantity: uint32(order.Quantity),
			OriginalURL:    order.Link,
			CreatedAt:      time.Now(),
			MaxAttempts:    3,
		}
		if err := uc.bus.Publish(ctx, bus.TopicOrderCreated, env); err != nil {
			uc.log.LogError(ctx, "recovery sweep republish failed", err)
			continue
		}
		recovered++
	}

	return recovered, nil
}

func validateLink(category, link string) error {
	parsed, err := url.Parse(link)
	if err != nil || parsed.Host == "" {
		return coreerrors.ValidationError("link is not a valid URL")
	}

	allowed, ok := hostsByCategory[strings.ToUpper(category)]
	if !ok {
		return coreerrors.ConfigurationErr("service category has no configured host pattern", map[string]interface{}{"category": category})
	}
	if !allowed[strings.ToLower(parsed.Host)] {
		return coreerrors.ValidationError("link host is not allowed for this service's category", map[string]interface{}{"host": parsed.Host, "category": category})
	}
	return nil
}
