// Package usecases implements the Campaign Assigner (C8): distributes an
// order's required clicks across the fixed campaign pool (spec §4.6).
package usecases

import (
	"context"
	"math"
	"sort"

	"github.com/RodolfoBonis/spooliq/core/bus"
	coreerrors "github.com/RodolfoBonis/spooliq/core/errors"
	"github.com/RodolfoBonis/spooliq/core/logger"
	"github.com/RodolfoBonis/spooliq/core/money"
	campaignentities "github.com/RodolfoBonis/spooliq/features/campaigns/domain/entities"
	"github.com/RodolfoBonis/spooliq/features/campaigns/domain/repositories"
	orderentities "github.com/RodolfoBonis/spooliq/features/orders/domain/entities"
	orderusecases "github.com/RodolfoBonis/spooliq/features/orders/domain/usecases"
	trackerrepo "github.com/RodolfoBonis/spooliq/features/tracker/domain/repositories"
	"github.com/google/uuid"
)

// AssignerUseCase is C8's handler for the offer.assignment topic.
type AssignerUseCase interface {
	HandleOfferAssignment(ctx context.Context, env bus.Envelope) error
}

type assignerUseCase struct {
	campaigns repositories.CampaignRepository
	tracker   trackerrepo.TrackerClient
	orders    orderusecases.OrderUseCase
	log       logger.Logger
}

// NewAssignerUseCase wires C8's collaborators.
func NewAssignerUseCase(campaigns repositories.CampaignRepository, tracker trackerrepo.TrackerClient, orders orderusecases.OrderUseCase, log logger.Logger) AssignerUseCase {
	return &assignerUseCase{campaigns: campaigns, tracker: tracker, orders: orders, log: log}
}

// HandleOfferAssignment runs spec §4.6's five assignment steps.
func (uc *assignerUseCase) HandleOfferAssignment(ctx context.Context, env bus.Envelope) error {
	orderID, err := uuid.Parse(env.OrderID)
	if err != nil {
		return coreerrors.PoisonMessageError("offer.assignment envelope carries an invalid orderId")
	}

	order, err := uc.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}

	campaigns, err := uc.campaigns.ListActiveCampaigns(ctx)
	if err != nil {
		return err
	}
	if len(campaigns) != 3 {
		return coreerrors.ConfigurationErr("exactly three active campaigns are required for assignment", map[string]interface{}{"active_count": len(campaigns)})
	}

	for _, campaign := range campaigns {
		exists, err := uc.tracker.CampaignExists(ctx, campaign.ExternalCampaignID)
		if err != nil {
			return coreerrors.ConfigurationErr("campaign health check failed", map[string]interface{}{"campaign_id": campaign.ExternalCampaignID})
		}
		if !exists {
			return coreerrors.ConfigurationErr("campaign unreachable in tracker", map[string]interface{}{"campaign_id": campaign.ExternalCampaignID})
		}
	}

	idempotencyKey := orderID.String() + ":1"
	offer, err := uc.tracker.CreateOffer(ctx, env.OriginalURL, "order-"+orderID.String(), idempotencyKey)
	if err != nil {
		return err
	}

	required := money.ClicksRequired(order.Quantity, order.Coefficient)
	allocations := distribute(required, campaigns)

	bindings := make([]*campaignentities.CampaignBindingEntity, 0, len(campaigns))
	for i, campaign := range campaigns {
		bindings = append(bindings, &campaignentities.CampaignBindingEntity{
			ID:                 uuid.New(),
			OrderID:            orderID,
			ExternalCampaignID: campaign.ExternalCampaignID,
			OfferID:            offer.ID,
			ClicksRequired:     allocations[i],
			Status:             campaignentities.BindingActive,
		})
	}

	if err := uc.campaigns.CreateBindings(ctx, bindings); err != nil {
		return err
	}

	return uc.orders.Transition(ctx, orderID, orderentities.EventAssigned, func(o *orderentities.OrderEntity) (orderentities.Status, error) {
		return orderentities.StatusActive, nil
	})
}

// distribute splits required clicks across campaigns proportional to
// weight, using the largest-remainder method for exactness; priority breaks
// rounding ties, with equal weights partitioning equally and any remainder
// going to the highest-priority (lowest Priority value) campaign (spec §4.6
// step 4).
func distribute(required int64, campaigns []*campaignentities.FixedCampaignEntity) []int64 {
	equal := len(campaigns) > 0
	for _, c := range campaigns {
		if c.Weight != campaigns[0].Weight {
			equal = false
			break
		}
	}
	if equal {
		n := int64(len(campaigns))
		result := make([]int64, len(campaigns))
		top := 0
		for i, c := range campaigns {
			result[i] = required / n
			if c.Priority < campaigns[top].Priority {
				top = i
			}
		}
		result[top] += required % n
		return result
	}

	totalWeight := 0
	for _, c := range campaigns {
		totalWeight += c.Weight
	}

	type share struct {
		index     int
		base      int64
		remainder float64
		priority  int
	}

	shares := make([]share, len(campaigns))
	var allocated int64
	for i, c := range campaigns {
		exact := float64(required) * float64(c.Weight) / float64(totalWeight)
		base := int64(math.Floor(exact))
		shares[i] = share{index: i, base: base, remainder: exact - float64(base), priority: c.Priority}
		allocated += base
	}

	remaining := required - allocated
	sort.SliceStable(shares, func(i, j int) bool {
		if shares[i].remainder != shares[j].remainder {
			return shares[i].remainder > shares[j].remainder
		}
		return shares[i].priority < shares[j].priority
	})

	result := make([]int64, len(campaigns))
	for _, s := range shares {
		result[s.index] = s.base
	}
	for i := int64(0); i < remaining; i++ {
		result[shares[i].index]++
	}

	return result
}
