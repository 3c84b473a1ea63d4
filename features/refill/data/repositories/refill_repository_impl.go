package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/RodolfoBonis/spooliq/features/refill/domain/entities"
	"github.com/RodolfoBonis/spooliq/features/refill/domain/repositories"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RodolfoBonis/spooliq/features/refill/data/models"
)

type refillRepositoryImpl struct {
	db *gorm.DB
}

// NewRefillRepository builds the refill audit trail storage adapter.
func NewRefillRepository(db *gorm.DB) repositories.RefillRepository {
	return &refillRepositoryImpl{db: db}
}

// terminalOrderStatuses mirrors orders/domain/entities' terminal set; kept
// local to avoid a domain-layer import across features.
var terminalOrderStatuses = []string{"COMPLETED", "CANCELLED"}

func (r *refillRepositoryImpl) CountCompletedRefills(ctx context.Context, parentID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("orders").
		Where("refill_parent_id = ? AND status = ?", parentID, "COMPLETED").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("refill: failed to count completed refills: %w", err)
	}
	return int(count), nil
}

func (r *refillRepositoryImpl) HasNonTerminalRefill(ctx context.Context, parentID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("orders").
		Where("refill_parent_id = ? AND status NOT IN ?", parentID, terminalOrderStatuses).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("refill: failed to check sibling refill state: %w", err)
	}
	return count > 0, nil
}

func (r *refillRepositoryImpl) MostRecentRefillAt(ctx context.Context, parentID uuid.UUID, since time.Time) (*time.Time, error) {
	var row models.OrderRefillModel
	err := r.db.WithContext(ctx).
		Where("original_order_id = ? AND created_at >= ?", parentID, since).
		Order("created_at DESC").
		Limit(1).
		First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("refill: failed to look up most recent refill: %w", err)
	}
	return &row.CreatedAt, nil
}

func (r *refillRepositoryImpl) NextRefillNumber(ctx context.Context, parentID uuid.UUID) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).Model(&models.OrderRefillModel{}).
		Where("original_order_id = ?", parentID).
		Select("MAX(refill_number)").
		Scan(&max).Error
	if err != nil {
		return 0, fmt.Errorf("refill: failed to resolve next refill number: %w", err)
	}
	if max == nil {
		return 1, nil
	}
	return *max + 1, nil
}

func (r *refillRepositoryImpl) CreateRefillRecord(ctx context.Context, record *entities.OrderRefillEntity) error {
	row := &models.OrderRefillModel{}
	row.FromEntity(record)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("refill: failed to create refill record: %w", err)
	}
	record.ID = row.ID
	record.CreatedAt = row.CreatedAt
	return nil
}
