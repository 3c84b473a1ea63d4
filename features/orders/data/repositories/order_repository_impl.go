package repositories

import (
	"context"
	"fmt"

	coreerrors "github.com/RodolfoBonis/spooliq/core/errors"
	"github.com/RodolfoBonis/spooliq/features/orders/data/models"
	"github.com/RodolfoBonis/spooliq/features/orders/domain/entities"
	"github.com/RodolfoBonis/spooliq/features/orders/domain/repositories"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type orderRepositoryImpl struct {
	db *gorm.DB
}

// NewOrderRepository builds the Order Store's (C2) storage adapter.
func NewOrderRepository(db *gorm.DB) repositories.OrderRepository {
	return &orderRepositoryImpl{db: db}
}

func (r *orderRepositoryImpl) Create(ctx context.Context, order *entities.OrderEntity) error {
	model := &models.OrderModel{}
	model.FromEntity(order)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("orders: failed to create order: %w", err)
	}
	order.ID = model.ID
	order.CreatedAt = model.CreatedAt
	order.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *orderRepositoryImpl) FindByID(ctx context.Context, orderID uuid.UUID) (*entities.OrderEntity, error) {
	model := &models.OrderModel{}
	err := r.db.WithContext(ctx).First(model, "id = ?", orderID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, coreerrors.NotFound(fmt.Sprintf("order %s not found", orderID))
		}
		return nil, fmt.Errorf("orders: failed to load order: %w", err)
	}
	return model.ToEntity(), nil
}

// ApplyTransition reads the current row inside a transaction, lets mutate
// compute the next state and its OrderEvent, validates the edge against the
// state machine (spec §4.2), and writes both rows conditionally on
// expectedVersion.
func (r *orderRepositoryImpl) ApplyTransition(ctx context.Context, orderID uuid.UUID, expectedVersion int64, mutate func(*entities.OrderEntity) (*entities.OrderEventEntity, error)) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := &models.OrderModel{}
		if err := tx.First(model, "id = ? AND version = ?", orderID, expectedVersion).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return repositories.ErrVersionConflict
			}
			return fmt.Errorf("orders: failed to load order for transition: %w", err)
		}

		order := model.ToEntity()
		event, err := mutate(order)
		if err != nil {
			return err
		}

		if !entities.CanTransition(event.OldStatus, event.NewStatus) {
			return repositories.ErrInvalidTransition
		}

		order.Version = expectedVersion + 1
		newModel := &models.OrderModel{}
		newModel.FromEntity(order)

		result := tx.Model(&models.OrderModel{}).
			Where("id = ? AND version = ?", orderID, expectedVersion).
			Updates(map[string]interface{}{
				"status":          newModel.Status,
				"start_count":     newModel.StartCount,
				"coefficient":     newModel.Coefficient,
				"remains":         newModel.Remains,
				"cost_incurred":   newModel.CostIncurred,
				"views_delivered": newModel.ViewsDelivered,
				"traffic_status":  newModel.TrafficStatus,
				"youtube_video_id": newModel.YoutubeVideoID,
				"version":         expectedVersion + 1,
			})
		if result.Error != nil {
			return fmt.Errorf("orders: failed to apply transition: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return repositories.ErrVersionConflict
		}

		eventModel := &models.OrderEventModel{}
		if err := eventModel.FromEntity(event); err != nil {
			return fmt.Errorf("orders: failed to encode order event payload: %w", err)
		}
		if err := tx.Create(eventModel).Error; err != nil {
			return fmt.Errorf("orders: failed to append order event: %w", err)
		}

		return nil
	})
}

func (r *orderRepositoryImpl) ListActiveForReconciliation(ctx context.Context, statuses []entities.Status, limit, offset int) ([]*entities.OrderEntity, error) {
	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}

	var rows []models.OrderModel
	err := r.db.WithContext(ctx).
		Where("status IN ?", statusStrings).
		Order("updated_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("orders: failed to list orders for reconciliation: %w", err)
	}

	out := make([]*entities.OrderEntity, len(rows))
	for i := range rows {
		out[i] = rows[i].ToEntity()
	}
	return out, nil
}
