package repositories

import (
	"context"
	"errors"

	"github.com/RodolfoBonis/spooliq/features/ledger/domain/entities"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrVersionConflict is returned by ApplyBalanceChange when expectedVersion
// no longer matches the stored row, driving the optimistic-concurrency
// retry loop in the Ledger use case (spec §4.1).
var ErrVersionConflict = errors.New("ledger: version conflict")

// LedgerRepository persists users and their balance-transaction log.
type LedgerRepository interface {
	// FindUserForUpdate reads the current (balance, version) for a debit/
	// credit attempt.
	FindUserForUpdate(ctx context.Context, userID uuid.UUID) (*entities.UserEntity, error)

	// ApplyBalanceChange writes the new balance conditionally on
	// expectedVersion and appends the transaction row atomically. Returns
	// ErrVersionConflict (as an error) if expectedVersion no longer matches.
	ApplyBalanceChange(ctx context.Context, userID uuid.UUID, expectedVersion int64, newBalance decimal.Decimal, txn *entities.BalanceTransactionEntity) error

	// Snapshot returns the current balance without locking.
	Snapshot(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
}
