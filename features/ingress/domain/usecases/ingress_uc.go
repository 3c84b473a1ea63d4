// Package usecases implements Result Ingress (C11): consumes external
// bot-result records keyed by externalId=order.id and derives order status
// (spec §4.9).
package usecases

import (
	"context"
	"encoding/json"

	"github.com/RodolfoBonis/spooliq/core/bus"
	coreerrors "github.com/RodolfoBonis/spooliq/core/errors"
	"github.com/RodolfoBonis/spooliq/core/logger"
	ingressentities "github.com/RodolfoBonis/spooliq/features/ingress/domain/entities"
	orderentities "github.com/RodolfoBonis/spooliq/features/orders/domain/entities"
	orderusecases "github.com/RodolfoBonis/spooliq/features/orders/domain/usecases"
	"github.com/google/uuid"
)

// IngressUseCase is C11's handler for the instagram.results topic.
type IngressUseCase interface {
	HandleResult(ctx context.Context, env bus.Envelope) error
}

type ingressUseCase struct {
	orders orderusecases.OrderUseCase
	log    logger.Logger
}

// NewIngressUseCase wires C11's collaborators.
func NewIngressUseCase(orders orderusecases.OrderUseCase, log logger.Logger) IngressUseCase {
	return &ingressUseCase{orders: orders, log: log}
}

// HandleResult decodes the bot-result payload, locates the order by its
// externalId, and updates its counters and derived status (spec §4.9). A
// malformed externalId is logged and not retried, per spec.
func (uc *ingressUseCase) HandleResult(ctx context.Context, env bus.Envelope) error {
	var result ingressentities.BotResult
	if err := json.Unmarshal(env.Payload, &result); err != nil {
		return coreerrors.PoisonMessageError("instagram.results payload is not valid JSON")
	}

	orderID, err := uuid.Parse(result.ExternalID)
	if err != nil {
		return coreerrors.PoisonMessageError("instagram.results externalId is not a valid order id")
	}

	newStatus := deriveStatus(result)

	return uc.orders.Transition(ctx, orderID, orderentities.EventStatusChanged, func(o *orderentities.OrderEntity) (orderentities.Status, error) {
		if result.StartCount != nil && o.StartCount == 0 {
			o.StartCount = *result.StartCount
		}

		remains := o.Quantity - result.Completed
		if remains < 0 {
			remains = 0
		}
		if remains > o.Quantity {
			remains = o.Quantity
		}
		o.Remains = remains

		if newStatus == orderentities.StatusCompleted || newStatus == orderentities.StatusPartial {
			o.TrafficStatus = orderentities.TrafficDelivered
		}

		return newStatus, nil
	})
}

// deriveStatus implements spec §4.9's result.status → order.status table.
// Unknown statuses fall back to PROCESSING.
func deriveStatus(result ingressentities.BotResult) orderentities.Status {
	switch result.Status {
	case ingressentities.ResultCompleted:
		return orderentities.StatusCompleted
	case ingressentities.ResultFailed:
		return orderentities.StatusError
	case ingressentities.ResultPartial:
		switch {
		case result.Completed > 0 && result.Failed > 0:
			return orderentities.StatusPartial
		case result.Completed > 0:
			return orderentities.StatusCompleted
		default:
			return orderentities.StatusError
		}
	case ingressentities.ResultProcessing, ingressentities.ResultInProgress:
		return orderentities.StatusProcessing
	case ingressentities.ResultCancelled:
		return orderentities.StatusCancelled
	default:
		return orderentities.StatusProcessing
	}
}
