package models

import (
	"time"

	"github.com/RodolfoBonis/spooliq/features/catalog/domain/entities"
	"github.com/shopspring/decimal"
)

// ServiceModel is the GORM projection of entities.ServiceEntity.
type ServiceModel struct {
	ID               int64           `gorm:"primaryKey" json:"id"`
	Name             string          `gorm:"type:varchar(255);not null" json:"name"`
	Category         string          `gorm:"type:varchar(64);index" json:"category"`
	MinOrderQty      int64           `gorm:"not null" json:"min_order_qty"`
	MaxOrderQty      int64           `gorm:"not null" json:"max_order_qty"`
	PricePerThousand decimal.Decimal `gorm:"type:numeric(18,8);not null" json:"price_per_thousand"`
	Active           bool            `gorm:"not null;default:true;index" json:"active"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName pins the physical table name.
func (ServiceModel) TableName() string { return "services" }

// ToEntity converts the row to the domain type.
func (m *ServiceModel) ToEntity() *entities.ServiceEntity {
	return &entities.ServiceEntity{
		ID:               m.ID,
		Name:             m.Name,
		Category:         m.Category,
		MinOrderQty:      m.MinOrderQty,
		MaxOrderQty:      m.MaxOrderQty,
		PricePerThousand: m.PricePerThousand,
		Active:           m.Active,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// CoefficientModel is the GORM projection of entities.CoefficientEntity.
type CoefficientModel struct {
	ServiceID   int64           `gorm:"primaryKey" json:"service_id"`
	Mode        string          `gorm:"primaryKey;type:varchar(16)" json:"mode"`
	Coefficient decimal.Decimal `gorm:"type:numeric(10,4);not null" json:"coefficient"`
}

// TableName pins the physical table name.
func (CoefficientModel) TableName() string { return "coefficients" }

// ToEntity converts the row to the domain type.
func (m *CoefficientModel) ToEntity() *entities.CoefficientEntity {
	return &entities.CoefficientEntity{
		ServiceID:   m.ServiceID,
		Mode:        entities.ProcessingMode(m.Mode),
		Coefficient: m.Coefficient,
	}
}
