package repositories

import (
	"context"
	"fmt"

	"github.com/RodolfoBonis/spooliq/features/campaigns/data/models"
	"github.com/RodolfoBonis/spooliq/features/campaigns/domain/entities"
	"github.com/RodolfoBonis/spooliq/features/campaigns/domain/repositories"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type campaignRepositoryImpl struct {
	db *gorm.DB
}

// NewCampaignRepository builds the campaign pool and binding storage adapter.
func NewCampaignRepository(db *gorm.DB) repositories.CampaignRepository {
	return &campaignRepositoryImpl{db: db}
}

func (r *campaignRepositoryImpl) ListActiveCampaigns(ctx context.Context) ([]*entities.FixedCampaignEntity, error) {
	var rows []models.FixedCampaignModel
	if err := r.db.WithContext(ctx).Where("active = ?", true).Order("priority ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("campaigns: failed to list active campaigns: %w", err)
	}
	out := make([]*entities.FixedCampaignEntity, len(rows))
	for i := range rows {
		out[i] = rows[i].ToEntity()
	}
	return out, nil
}

func (r *campaignRepositoryImpl) CreateBindings(ctx context.Context, bindings []*entities.CampaignBindingEntity) error {
	rows := make([]models.CampaignBindingModel, len(bindings))
	for i, b := range bindings {
		rows[i].FromEntity(b)
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("campaigns: failed to create bindings: %w", err)
	}
	return nil
}

func (r *campaignRepositoryImpl) ListBindingsByOrder(ctx context.Context, orderID uuid.UUID) ([]*entities.CampaignBindingEntity, error) {
	var rows []models.CampaignBindingModel
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("campaigns: failed to list bindings: %w", err)
	}
	out := make([]*entities.CampaignBindingEntity, len(rows))
	for i := range rows {
		out[i] = rows[i].ToEntity()
	}
	return out, nil
}

func (r *campaignRepositoryImpl) UpdateBinding(ctx context.Context, binding *entities.CampaignBindingEntity) error {
	model := &models.CampaignBindingModel{}
	model.FromEntity(binding)
	err := r.db.WithContext(ctx).Model(&models.CampaignBindingModel{}).
		Where("id = ?", binding.ID).
		Updates(map[string]interface{}{
			"clicks_delivered": model.ClicksDelivered,
			"conversions":      model.Conversions,
			"cost":             model.Cost,
			"revenue":          model.Revenue,
			"status":           model.Status,
			"pause_reason":     model.PauseReason,
			"last_stats_at":    model.LastStatsAt,
		}).Error
	if err != nil {
		return fmt.Errorf("campaigns: failed to update binding: %w", err)
	}
	return nil
}
