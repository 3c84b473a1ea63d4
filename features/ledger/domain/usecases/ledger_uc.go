// Package usecases implements the Ledger's (C1) exposed operations:
// credit, debit, snapshot (spec §4.1).
package usecases

import (
	"context"
	"errors"
	"time"

	coreerrors "github.com/RodolfoBonis/spooliq/core/errors"
	"github.com/RodolfoBonis/spooliq/core/logger"
	"github.com/RodolfoBonis/spooliq/core/reliability"
	"github.com/RodolfoBonis/spooliq/features/ledger/domain/entities"
	"github.com/RodolfoBonis/spooliq/features/ledger/domain/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerUseCase is the C1 surface consumed by C6 (intake debit), C9/C10
// (refunds/refill credits), and any operator-facing adjustment flow.
type LedgerUseCase interface {
	Debit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, kind entities.TransactionKind, referenceID string) error
	Credit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, kind entities.TransactionKind, referenceID string) error
	Snapshot(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
}

type ledgerUseCase struct {
	repo   repositories.LedgerRepository
	log    logger.Logger
	policy reliability.RetryPolicy
}

// NewLedgerUseCase wires the ledger's optimistic-concurrency retry policy
// (spec §4.1: 3 attempts, waiting 100 then 200 ms) over the repository.
func NewLedgerUseCase(repo repositories.LedgerRepository, log logger.Logger) LedgerUseCase {
	return &ledgerUseCase{repo: repo, log: log, policy: reliability.LedgerPolicy()}
}

// Debit reads (balance, version), verifies balance ≥ amount, and writes
// (balance-amount, version+1) conditionally on the observed version,
// retrying on conflict with bounded exponential backoff (spec §4.1).
func (uc *ledgerUseCase) Debit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, kind entities.TransactionKind, referenceID string) error {
	if amount.Sign() <= 0 {
		return coreerrors.ValidationError("debit amount must be positive")
	}

	return uc.mutate(ctx, userID, func(user *entities.UserEntity) (decimal.Decimal, *entities.BalanceTransactionEntity, error) {
		if user.Balance.LessThan(amount) {
			return decimal.Zero, nil, coreerrors.InsufficientBalanceError("balance insufficient for debit", map[string]interface{}{
				"user_id": userID,
				"balance": user.Balance.String(),
				"amount":  amount.String(),
			})
		}

		newBalance := user.Balance.Sub(amount)
		txn := &entities.BalanceTransactionEntity{
			ID:            uuid.New(),
			UserID:        userID,
			Amount:        amount.Neg(),
			BalanceBefore: user.Balance,
			BalanceAfter:  newBalance,
			Kind:          kind,
			ReferenceID:   referenceID,
			CreatedAt:     time.Now(),
		}
		return newBalance, txn, nil
	})
}

// Credit is the mirror of Debit for deposits, refunds, and refill credits.
func (uc *ledgerUseCase) Credit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, kind entities.TransactionKind, referenceID string) error {
	if amount.Sign() <= 0 {
		return coreerrors.ValidationError("credit amount must be positive")
	}

	return uc.mutate(ctx, userID, func(user *entities.UserEntity) (decimal.Decimal, *entities.BalanceTransactionEntity, error) {
		newBalance := user.Balance.Add(amount)
		txn := &entities.BalanceTransactionEntity{
			ID:            uuid.New(),
			UserID:        userID,
			Amount:        amount,
			BalanceBefore: user.Balance,
			BalanceAfter:  newBalance,
			Kind:          kind,
			ReferenceID:   referenceID,
			CreatedAt:     time.Now(),
		}
		return newBalance, txn, nil
	})
}

func (uc *ledgerUseCase) Snapshot(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	return uc.repo.Snapshot(ctx, userID)
}

// mutate runs the read-check-conditional-write loop shared by Debit and
// Credit, retrying only on a version conflict.
func (uc *ledgerUseCase) mutate(ctx context.Context, userID uuid.UUID, compute func(*entities.UserEntity) (decimal.Decimal, *entities.BalanceTransactionEntity, error)) error {
	var terminal error

	err := uc.policy.Do(ctx, func(err error) bool {
		return errors.Is(err, repositories.ErrVersionConflict)
	}, func(ctx context.Context) error {
		user, err := uc.repo.FindUserForUpdate(ctx, userID)
		if err != nil {
			terminal = err
			return nil
		}

		newBalance, txn, err := compute(user)
		if err != nil {
			terminal = err
			return nil
		}

		applyErr := uc.repo.ApplyBalanceChange(ctx, userID, user.Version, newBalance, txn)
		if applyErr != nil && !errors.Is(applyErr, repositories.ErrVersionConflict) {
			terminal = applyErr
			return nil
		}
		return applyErr
	})

	if terminal != nil {
		return terminal
	}

	if errors.Is(err, repositories.ErrVersionConflict) {
		return coreerrors.ConflictError("ledger balance update conflict exhausted retries")
	}

	return err
}
