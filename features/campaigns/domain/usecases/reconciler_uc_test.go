package usecases

import (
	"testing"

	campaignentities "github.com/RodolfoBonis/spooliq/features/campaigns/domain/entities"
	orderentities "github.com/RodolfoBonis/spooliq/features/orders/domain/entities"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAutoPauseTrigger(t *testing.T) {
	budget := decimal.RequireFromString("100.00")

	t.Run("quantity met takes priority over budget", func(t *testing.T) {
		order := &orderentities.OrderEntity{Quantity: 100, Coefficient: decimal.NewFromInt(1), BudgetLimit: &budget}
		binding := &campaignentities.CampaignBindingEntity{ClicksDelivered: 100, BudgetLimit: &budget}

		reason, paused := autoPauseTrigger(binding, order, decimal.RequireFromString("500.00"))
		assert.True(t, paused)
		assert.Equal(t, "quantity_met", reason)
	})

	t.Run("binding budget exceeded before order budget", func(t *testing.T) {
		order := &orderentities.OrderEntity{Quantity: 1000, Coefficient: decimal.NewFromInt(1), BudgetLimit: &budget}
		bindingBudget := decimal.RequireFromString("10.00")
		binding := &campaignentities.CampaignBindingEntity{ClicksDelivered: 1, BudgetLimit: &bindingBudget}

		reason, paused := autoPauseTrigger(binding, order, decimal.RequireFromString("10.00"))
		assert.True(t, paused)
		assert.Equal(t, "binding_budget_exceeded", reason)
	})

	t.Run("order budget exceeded when binding has none", func(t *testing.T) {
		order := &orderentities.OrderEntity{Quantity: 1000, Coefficient: decimal.NewFromInt(1), BudgetLimit: &budget, CostIncurred: decimal.RequireFromString("90.00")}
		binding := &campaignentities.CampaignBindingEntity{ClicksDelivered: 1}

		reason, paused := autoPauseTrigger(binding, order, decimal.RequireFromString("10.00"))
		assert.True(t, paused)
		assert.Equal(t, "order_budget_exceeded", reason)
	})

	t.Run("no trigger fires while under every bound", func(t *testing.T) {
		order := &orderentities.OrderEntity{Quantity: 1000, Coefficient: decimal.NewFromInt(1), BudgetLimit: &budget}
		binding := &campaignentities.CampaignBindingEntity{ClicksDelivered: 1}

		reason, paused := autoPauseTrigger(binding, order, decimal.RequireFromString("1.00"))
		assert.False(t, paused)
		assert.Empty(t, reason)
	})

	t.Run("zero coefficient never triggers", func(t *testing.T) {
		order := &orderentities.OrderEntity{Quantity: 100, Coefficient: decimal.Zero}
		binding := &campaignentities.CampaignBindingEntity{ClicksDelivered: 1000}

		reason, paused := autoPauseTrigger(binding, order, decimal.Zero)
		assert.False(t, paused)
		assert.Empty(t, reason)
	})
}
