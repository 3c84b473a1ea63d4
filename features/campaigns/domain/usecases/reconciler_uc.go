// Package usecases also implements the Reconciler (C9): a periodic job
// that polls the tracker for each active order's campaign bindings, updates
// delivered counts, applies auto-pause rules, and advances order status
// (spec §4.6).
package usecases

import (
	"context"
	"time"

	coreerrors "github.com/RodolfoBonis/spooliq/core/errors"
	"github.com/RodolfoBonis/spooliq/core/logger"
	"github.com/RodolfoBonis/spooliq/core/money"
	campaignentities "github.com/RodolfoBonis/spooliq/features/campaigns/domain/entities"
	"github.com/RodolfoBonis/spooliq/features/campaigns/domain/repositories"
	orderentities "github.com/RodolfoBonis/spooliq/features/orders/domain/entities"
	orderusecases "github.com/RodolfoBonis/spooliq/features/orders/domain/usecases"
	trackerrepo "github.com/RodolfoBonis/spooliq/features/tracker/domain/repositories"
	"github.com/shopspring/decimal"
)

// ReconcilerUseCase runs one reconciliation tick over a batch of orders.
type ReconcilerUseCase interface {
	ReconcileBatch(ctx context.Context, batchSize int) (int, error)
}

type reconcilerUseCase struct {
	campaigns repositories.CampaignRepository
	tracker   trackerrepo.TrackerClient
	orders    orderusecases.OrderUseCase
	log       logger.Logger
}

// NewReconcilerUseCase wires C9's collaborators.
func NewReconcilerUseCase(campaigns repositories.CampaignRepository, tracker trackerrepo.TrackerClient, orders orderusecases.OrderUseCase, log logger.Logger) ReconcilerUseCase {
	return &reconcilerUseCase{campaigns: campaigns, tracker: tracker, orders: orders, log: log}
}

var reconciliationStatuses = []orderentities.Status{
	orderentities.StatusProcessing,
	orderentities.StatusActive,
	orderentities.StatusInProgress,
}

// ReconcileBatch processes up to batchSize orders, tolerating per-binding
// failures without blocking sibling bindings or orders (spec §4.6).
func (uc *reconcilerUseCase) ReconcileBatch(ctx context.Context, batchSize int) (int, error) {
	candidates, err := uc.orders.ListActiveForReconciliation(ctx, reconciliationStatuses, batchSize, 0)
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, order := range candidates {
		if err := uc.reconcileOrder(ctx, order); err != nil {
			uc.log.LogError(ctx, "failed to reconcile order", err)
			continue
		}
		processed++
	}

	return processed, nil
}

func (uc *reconcilerUseCase) reconcileOrder(ctx context.Context, order *orderentities.OrderEntity) error {
	bindings, err := uc.campaigns.ListBindingsByOrder(ctx, order.ID)
	if err != nil {
		return err
	}

	var totalClicks int64
	var totalCost decimal.Decimal

	for _, binding := range bindings {
		if binding.Status == campaignentities.BindingActive {
			stats, err := uc.tracker.GetDetailedStats(ctx, binding.ExternalCampaignID)
			if err != nil {
				uc.log.LogError(ctx, "failed to fetch campaign stats; skipping binding", err)
			} else {
				binding.ClicksDelivered = stats.Clicks
				binding.Conversions = stats.Conversions
				binding.Cost = stats.Cost
				binding.Revenue = stats.Revenue
				now := time.Now()
				binding.LastStatsAt = &now

				if reason, shouldPause := autoPauseTrigger(binding, order, stats.Cost); shouldPause {
					idempotencyKey := order.ID.String() + ":" + binding.ExternalCampaignID
					if _, pauseErr := uc.tracker.PauseCampaign(ctx, binding.ExternalCampaignID, idempotencyKey); pauseErr != nil {
						uc.log.LogError(ctx, "failed to pause campaign at tracker", pauseErr)
					}
					binding.Status = campaignentities.BindingPaused
					binding.PauseReason = &reason
				}

				if err := uc.campaigns.UpdateBinding(ctx, binding); err != nil {
					uc.log.LogError(ctx, "failed to persist binding update", err)
				}
			}
		}

		// Paused (and any other non-active) bindings still contribute their
		// last-known clicks/cost to the order totals, so a binding leaving
		// the active set never makes ViewsDelivered/CostIncurred regress.
		totalClicks += binding.ClicksDelivered
		totalCost = totalCost.Add(binding.Cost)
	}

	if order.Coefficient.IsZero() {
		return coreerrors.ConfigurationErr("order coefficient is zero; cannot derive views", map[string]interface{}{"order_id": order.ID})
	}
	totalViews := money.ViewsFromClicks(totalClicks, order.Coefficient)

	return uc.orders.Transition(ctx, order.ID, orderentities.EventReconciled, func(o *orderentities.OrderEntity) (orderentities.Status, error) {
		o.ViewsDelivered = totalViews
		o.CostIncurred = totalCost

		if totalViews >= o.Quantity {
			o.TrafficStatus = orderentities.TrafficDelivered
			return orderentities.StatusCompleted, nil
		}
		if totalViews > 0 {
			o.TrafficStatus = orderentities.TrafficRunning
		}
		return o.Status, nil
	})
}

// autoPauseTrigger evaluates spec §4.6's three auto-pause conditions in
// order, first match wins.
func autoPauseTrigger(binding *campaignentities.CampaignBindingEntity, order *orderentities.OrderEntity, statsCost decimal.Decimal) (string, bool) {
	if order.Coefficient.IsZero() {
		return "", false
	}

	deliveredViews := money.ViewsFromClicks(binding.ClicksDelivered, order.Coefficient)
	if deliveredViews >= order.Quantity {
		return "quantity_met", true
	}

	if binding.BudgetLimit != nil && statsCost.GreaterThanOrEqual(*binding.BudgetLimit) {
		return "binding_budget_exceeded", true
	}

	if order.BudgetLimit != nil && order.CostIncurred.Add(statsCost).GreaterThanOrEqual(*order.BudgetLimit) {
		return "order_budget_exceeded", true
	}

	return "", false
}
