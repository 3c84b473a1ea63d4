package models

import (
	"time"

	"github.com/RodolfoBonis/spooliq/features/ledger/domain/entities"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UserModel is the GORM projection of entities.UserEntity, following the
// teacher's ToEntity/FromEntity/BeforeCreate mapping convention (see
// features/budget/data/models/budget_model.go in the teacher repo).
type UserModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username        string          `gorm:"type:varchar(64);uniqueIndex;not null"`
	Email           string          `gorm:"type:varchar(255);uniqueIndex;not null"`
	Role            string          `gorm:"type:varchar(16);not null;default:'USER'"`
	Balance         decimal.Decimal `gorm:"type:numeric(24,8);not null;default:0"`
	TotalSpent      decimal.Decimal `gorm:"type:numeric(24,8);not null;default:0"`
	APIKeyDigest    *string         `gorm:"type:varchar(128);uniqueIndex"`
	FailedAuthCount int             `gorm:"not null;default:0"`
	AccountLocked   bool            `gorm:"not null;default:false"`
	Active          bool            `gorm:"not null;default:true"`
	Version         int64           `gorm:"not null;default:0"`
	CreatedAt       time.Time       `gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime"`
}

// TableName pins the physical table name.
func (UserModel) TableName() string { return "users" }

// BeforeCreate assigns the primary key client-side, matching the teacher's
// hook convention.
func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Role == "" {
		m.Role = string(entities.RoleUser)
	}
	return nil
}

// ToEntity converts the row to the domain type.
func (m *UserModel) ToEntity() *entities.UserEntity {
	return &entities.UserEntity{
		ID:              m.ID,
		Username:        m.Username,
		Email:           m.Email,
		Role:            entities.Role(m.Role),
		Balance:         m.Balance,
		TotalSpent:      m.TotalSpent,
		APIKeyDigest:    m.APIKeyDigest,
		FailedAuthCount: m.FailedAuthCount,
		AccountLocked:   m.AccountLocked,
		Active:          m.Active,
		Version:         m.Version,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// FromEntity populates the row from the domain type.
func (m *UserModel) FromEntity(e *entities.UserEntity) {
	m.ID = e.ID
	m.Username = e.Username
	m.Email = e.Email
	m.Role = string(e.Role)
	m.Balance = e.Balance
	m.TotalSpent = e.TotalSpent
	m.APIKeyDigest = e.APIKeyDigest
	m.FailedAuthCount = e.FailedAuthCount
	m.AccountLocked = e.AccountLocked
	m.Active = e.Active
	m.Version = e.Version
}

// BalanceTransactionModel is the append-only ledger entry row.
type BalanceTransactionModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_balance_txn_user_created,priority:1"`
	OrderID       *uuid.UUID      `gorm:"type:uuid;index"`
	DepositID     *uuid.UUID      `gorm:"type:uuid;index"`
	Amount        decimal.Decimal `gorm:"type:numeric(24,8);not null"`
	BalanceBefore decimal.Decimal `gorm:"type:numeric(24,8);not null"`
	BalanceAfter  decimal.Decimal `gorm:"type:numeric(24,8);not null"`
	Kind          string          `gorm:"type:varchar(24);not null"`
	ReferenceID   string          `gorm:"type:varchar(128)"`
	CreatedAt     time.Time       `gorm:"autoCreateTime;index:idx_balance_txn_user_created,priority:2,sort:desc"`
	Version       int64           `gorm:"not null;default:0"`
}

// TableName pins the physical table name.
func (BalanceTransactionModel) TableName() string { return "balance_transactions" }

// BeforeCreate assigns the primary key client-side.
func (m *BalanceTransactionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// ToEntity converts the row to the domain type.
func (m *BalanceTransactionModel) ToEntity() *entities.BalanceTransactionEntity {
	return &entities.BalanceTransactionEntity{
		ID:            m.ID,
		UserID:        m.UserID,
		OrderID:       m.OrderID,
		DepositID:     m.DepositID,
		Amount:        m.Amount,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		Kind:          entities.TransactionKind(m.Kind),
		ReferenceID:   m.ReferenceID,
		CreatedAt:     m.CreatedAt,
		Version:       m.Version,
	}
}

// FromEntity populates the row from the domain type.
func (m *BalanceTransactionModel) FromEntity(e *entities.BalanceTransactionEntity) {
	m.ID = e.ID
	m.UserID = e.UserID
	m.OrderID = e.OrderID
	m.DepositID = e.DepositID
	m.Amount = e.Amount
	m.BalanceBefore = e.BalanceBefore
	m.BalanceAfter = e.BalanceAfter
	m.Kind = string(e.Kind)
	m.ReferenceID = e.ReferenceID
	m.Version = e.Version
}
