package repositories

import (
	"context"

	"github.com/RodolfoBonis/spooliq/features/campaigns/domain/entities"
	"github.com/google/uuid"
)

// CampaignRepository persists the fixed campaign pool and its per-order
// bindings.
type CampaignRepository interface {
	ListActiveCampaigns(ctx context.Context) ([]*entities.FixedCampaignEntity, error)
	CreateBindings(ctx context.Context, bindings []*entities.CampaignBindingEntity) error
	// ListBindingsByOrder returns every binding for orderID regardless of
	// status, so a caller computing order-level totals can include bindings
	// already paused by a prior reconciliation tick.
	ListBindingsByOrder(ctx context.Context, orderID uuid.UUID) ([]*entities.CampaignBindingEntity, error)
	UpdateBinding(ctx context.Context, binding *entities.CampaignBindingEntity) error
}
