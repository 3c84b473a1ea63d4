// Package entities holds the Ledger component's (C1) domain types: the
// user balance aggregate and its append-only transaction log (spec §3.1
// User, §3.1 BalanceTransaction).
package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Role mirrors core/roles' string constants as a domain type so UserEntity
// doesn't depend on the ambient core/roles package.
type Role string

// User roles (spec §3.1).
const (
	RoleUser     Role = "USER"
	RoleOperator Role = "OPERATOR"
	RoleAdmin    Role = "ADMIN"
)

// UserEntity is the exclusive owner of the balance scalar (spec §3.1).
type UserEntity struct {
	ID              uuid.UUID
	Username        string
	Email           string
	Role            Role
	Balance         decimal.Decimal
	TotalSpent      decimal.Decimal
	APIKeyDigest    *string
	FailedAuthCount int
	AccountLocked   bool
	Active          bool
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TransactionKind enumerates BalanceTransaction.kind (spec §3.1).
type TransactionKind string

// Transaction kinds. Amount is stored signed (negative for debits), so
// BalanceBefore + Amount = BalanceAfter.
const (
	KindDeposit      TransactionKind = "DEPOSIT"
	KindOrderPayment TransactionKind = "ORDER_PAYMENT"
	KindRefund       TransactionKind = "REFUND"
	KindRefillCredit TransactionKind = "REFILL_CREDIT"
	KindAdjustment   TransactionKind = "ADJUSTMENT"
)

// Debits reduce balance; everything else credits it.
func (k TransactionKind) IsDebit() bool {
	return k == KindOrderPayment
}

// BalanceTransactionEntity is the immutable ledger entry (spec §3.1).
type BalanceTransactionEntity struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	OrderID        *uuid.UUID
	DepositID      *uuid.UUID
	Amount         decimal.Decimal
	BalanceBefore  decimal.Decimal
	BalanceAfter   decimal.Decimal
	Kind           TransactionKind
	ReferenceID    string
	CreatedAt      time.Time
	Version        int64
}
