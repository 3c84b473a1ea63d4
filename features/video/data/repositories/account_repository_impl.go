package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/RodolfoBonis/spooliq/features/video/data/models"
	"github.com/RodolfoBonis/spooliq/features/video/domain/entities"
	"github.com/RodolfoBonis/spooliq/features/video/domain/repositories"
	"gorm.io/gorm"
)

type accountRepositoryImpl struct {
	db *gorm.DB
}

// NewAccountRepository builds the YouTube account pool's storage adapter.
func NewAccountRepository(db *gorm.DB) repositories.AccountRepository {
	return &accountRepositoryImpl{db: db}
}

// ReserveAccount picks the least-used eligible account and increments its
// quota counter in the same transaction that reserves it (spec §4.5),
// resetting the counter first if lastClipDate predates today (spec §3.2).
func (r *accountRepositoryImpl) ReserveAccount(ctx context.Context, today time.Time) (*entities.YouTubeAccountEntity, error) {
	var reserved *entities.YouTubeAccountEntity

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dayStart := today.UTC().Truncate(24 * time.Hour)

		if err := tx.Model(&models.YouTubeAccountModel{}).
			Where("status = ? AND last_clip_date < ?", string(entities.AccountActive), dayStart).
			Updates(map[string]interface{}{"daily_clips_count": 0}).Error; err != nil {
			return fmt.Errorf("video: failed to reset stale daily quotas: %w", err)
		}

		var model models.YouTubeAccountModel
		err := tx.
			Where("status = ? AND daily_clips_count < daily_limit", string(entities.AccountActive)).
			Order("daily_clips_count ASC, last_used_at ASC").
			First(&model).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			return fmt.Errorf("video: failed to select account: %w", err)
		}

		result := tx.Model(&models.YouTubeAccountModel{}).
			Where("id = ? AND daily_clips_count = ?", model.ID, model.DailyClipsCount).
			Updates(map[string]interface{}{
				"daily_clips_count": model.DailyClipsCount + 1,
				"last_clip_date":    dayStart,
				"last_used_at":      time.Now(),
			})
		if result.Error != nil {
			return fmt.Errorf("video: failed to reserve account: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil
		}

		model.DailyClipsCount++
		reserved = model.ToEntity()
		return nil
	})

	return reserved, err
}
