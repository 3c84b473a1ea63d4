package repositories

import (
	"context"
	"fmt"

	coreerrors "github.com/RodolfoBonis/spooliq/core/errors"
	"github.com/RodolfoBonis/spooliq/features/video/data/models"
	"github.com/RodolfoBonis/spooliq/features/video/domain/entities"
	"github.com/RodolfoBonis/spooliq/features/video/domain/repositories"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type videoProcessingRepositoryImpl struct {
	db *gorm.DB
}

// NewVideoProcessingRepository builds the per-order video sub-state adapter.
func NewVideoProcessingRepository(db *gorm.DB) repositories.VideoProcessingRepository {
	return &videoProcessingRepositoryImpl{db: db}
}

func (r *videoProcessingRepositoryImpl) Upsert(ctx context.Context, vp *entities.VideoProcessingEntity) error {
	model := &models.VideoProcessingModel{}
	model.FromEntity(vp)

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}},
			UpdateAll: true,
		}).
		Create(model).Error
	if err != nil {
		return fmt.Errorf("video: failed to upsert video processing state: %w", err)
	}
	return nil
}

func (r *videoProcessingRepositoryImpl) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*entities.VideoProcessingEntity, error) {
	model := &models.VideoProcessingModel{}
	err := r.db.WithContext(ctx).First(model, "order_id = ?", orderID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, coreerrors.NotFound(fmt.Sprintf("video processing state for order %s not found", orderID))
		}
		return nil, fmt.Errorf("video: failed to load video processing state: %w", err)
	}
	return model.ToEntity(), nil
}
