package repositories

import (
	"context"
	"fmt"

	"github.com/RodolfoBonis/spooliq/features/ledger/data/models"
	"github.com/RodolfoBonis/spooliq/features/ledger/domain/entities"
	"github.com/RodolfoBonis/spooliq/features/ledger/domain/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ledgerRepositoryImpl struct {
	db *gorm.DB
}

// NewLedgerRepository builds the Ledger's (C1) storage adapter, following
// the teacher's repository-implements-domain-interface pattern (see
// features/budget/data/repositories/budget_repository_impl.go).
func NewLedgerRepository(db *gorm.DB) repositories.LedgerRepository {
	return &ledgerRepositoryImpl{db: db}
}

func (r *ledgerRepositoryImpl) FindUserForUpdate(ctx context.Context, userID uuid.UUID) (*entities.UserEntity, error) {
	model := &models.UserModel{}
	if err := r.db.WithContext(ctx).First(model, "id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("ledger: user not found: %w", err)
	}
	return model.ToEntity(), nil
}

// ApplyBalanceChange performs the conditional UPDATE ... WHERE version = ?
// that implements spec §4.1's optimistic-concurrency debit/credit, writing
// the BalanceTransaction row in the same database transaction.
func (r *ledgerRepositoryImpl) ApplyBalanceChange(ctx context.Context, userID uuid.UUID, expectedVersion int64, newBalance decimal.Decimal, txn *entities.BalanceTransactionEntity) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.UserModel{}).
			Where("id = ? AND version = ?", userID, expectedVersion).
			Updates(map[string]interface{}{
				"balance": newBalance,
				"version": expectedVersion + 1,
			})
		if result.Error != nil {
			return fmt.Errorf("ledger: failed to update balance: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return repositories.ErrVersionConflict
		}

		txnModel := &models.BalanceTransactionModel{}
		txnModel.FromEntity(txn)
		txnModel.Version = expectedVersion + 1
		if err := tx.Create(txnModel).Error; err != nil {
			return fmt.Errorf("ledger: failed to append transaction: %w", err)
		}

		return nil
	})
}

func (r *ledgerRepositoryImpl) Snapshot(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Select("balance").First(&model, "id = ?", userID).Error; err != nil {
		return decimal.Zero, fmt.Errorf("ledger: user not found: %w", err)
	}
	return model.Balance, nil
}
