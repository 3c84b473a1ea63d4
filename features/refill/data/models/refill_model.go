package models

import (
	"time"

	"github.com/RodolfoBonis/spooliq/features/refill/domain/entities"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRefillModel is the GORM projection of entities.OrderRefillEntity.
// The unique constraint on (original_order_id, refill_number) (spec §3.1,
// §4.7 step 12) is a composite uniqueIndex, not expressible per-column.
type OrderRefillModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	OriginalOrderID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_refill_parent_number" json:"original_order_id"`
	RefillOrderID      uuid.UUID `gorm:"type:uuid;not null;index" json:"refill_order_id"`
	RefillNumber       int       `gorm:"not null;uniqueIndex:idx_refill_parent_number" json:"refill_number"`
	OriginalQuantity   int64     `gorm:"not null" json:"original_quantity"`
	DeliveredQuantity  int64     `gorm:"not null" json:"delivered_quantity"`
	RefillQuantity     int64     `gorm:"not null" json:"refill_quantity"`
	StartCountAtRefill int64     `gorm:"not null" json:"start_count_at_refill"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName pins the physical table name.
func (OrderRefillModel) TableName() string { return "order_refills" }

// BeforeCreate assigns the primary key client-side.
func (m *OrderRefillModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// ToEntity converts the row to the domain type.
func (m *OrderRefillModel) ToEntity() *entities.OrderRefillEntity {
	return &entities.OrderRefillEntity{
		ID:                 m.ID,
		OriginalOrderID:    m.OriginalOrderID,
		RefillOrderID:      m.RefillOrderID,
		RefillNumber:       m.RefillNumber,
		OriginalQuantity:   m.OriginalQuantity,
		DeliveredQuantity:  m.DeliveredQuantity,
		RefillQuantity:     m.RefillQuantity,
		StartCountAtRefill: m.StartCountAtRefill,
		CreatedAt:          m.CreatedAt,
	}
}

// FromEntity populates the row from the domain type.
func (m *OrderRefillModel) FromEntity(e *entities.OrderRefillEntity) {
	m.ID = e.ID
	m.OriginalOrderID = e.OriginalOrderID
	m.RefillOrderID = e.RefillOrderID
	m.RefillNumber = e.RefillNumber
	m.OriginalQuantity = e.OriginalQuantity
	m.DeliveredQuantity = e.DeliveredQuantity
	m.RefillQuantity = e.RefillQuantity
	m.StartCountAtRefill = e.StartCountAtRefill
}
