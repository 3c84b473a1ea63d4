package models

import (
	"encoding/json"
	"time"

	"github.com/RodolfoBonis/spooliq/features/orders/domain/entities"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderModel is the GORM projection of entities.OrderEntity. AutoMigrate
// creates it as a single unpartitioned table whose primary key is id alone;
// it is not range-partitioned by createdAt.
type OrderModel struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID         uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	ServiceID      int64            `gorm:"not null;index" json:"service_id"`
	Link           string           `gorm:"type:text;not null" json:"link"`
	Quantity       int64            `gorm:"not null" json:"quantity"`
	Charge         decimal.Decimal  `gorm:"type:numeric(18,8);not null" json:"charge"`
	StartCount     int64            `gorm:"not null;default:0" json:"start_count"`
	Remains        int64            `gorm:"not null" json:"remains"`
	Status         string           `gorm:"type:varchar(16);not null;index" json:"status"`
	YoutubeVideoID *string          `gorm:"type:varchar(32)" json:"youtube_video_id"`
	Coefficient    decimal.Decimal  `gorm:"type:numeric(10,4);not null;default:1" json:"coefficient"`
	TargetCountry  *string          `gorm:"type:varchar(8)" json:"target_country"`
	BudgetLimit    *decimal.Decimal `gorm:"type:numeric(18,8)" json:"budget_limit"`
	CostIncurred   decimal.Decimal  `gorm:"type:numeric(18,8);not null;default:0" json:"cost_incurred"`
	ViewsDelivered int64            `gorm:"not null;default:0" json:"views_delivered"`
	TrafficStatus  string           `gorm:"type:varchar(16);not null;default:'NONE'" json:"traffic_status"`
	IsRefill       bool             `gorm:"not null;default:false" json:"is_refill"`
	RefillParentID *uuid.UUID       `gorm:"type:uuid;index" json:"refill_parent_id"`
	Version        int64            `gorm:"not null;default:0" json:"version"`
	CreatedAt      time.Time        `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt      time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName pins the physical table name.
func (OrderModel) TableName() string { return "orders" }

// BeforeCreate assigns the primary key client-side.
func (m *OrderModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// ToEntity converts the row to the domain type.
func (m *OrderModel) ToEntity() *entities.OrderEntity {
	return &entities.OrderEntity{
		ID:             m.ID,
		UserID:         m.UserID,
		ServiceID:      m.ServiceID,
		Link:           m.Link,
		Quantity:       m.Quantity,
		Charge:         m.Charge,
		StartCount:     m.StartCount,
		Remains:        m.Remains,
		Status:         entities.Status(m.Status),
		YoutubeVideoID: m.YoutubeVideoID,
		Coefficient:    m.Coefficient,
		TargetCountry:  m.TargetCountry,
		BudgetLimit:    m.BudgetLimit,
		CostIncurred:   m.CostIncurred,
		ViewsDelivered: m.ViewsDelivered,
		TrafficStatus:  entities.TrafficStatus(m.TrafficStatus),
		IsRefill:       m.IsRefill,
		RefillParentID: m.RefillParentID,
		Version:        m.Version,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// FromEntity populates the row from the domain type.
func (m *OrderModel) FromEntity(e *entities.OrderEntity) {
	m.ID = e.ID
	m.UserID = e.UserID
	m.ServiceID = e.ServiceID
	m.Link = e.Link
	m.Quantity = e.Quantity
	m.Charge = e.Charge
	m.StartCount = e.StartCount
	m.Remains = e.Remains
	m.Status = string(e.Status)
	m.YoutubeVideoID = e.YoutubeVideoID
	m.Coefficient = e.Coefficient
	m.TargetCountry = e.TargetCountry
	m.BudgetLimit = e.BudgetLimit
	m.CostIncurred = e.CostIncurred
	m.ViewsDelivered = e.ViewsDelivered
	m.TrafficStatus = string(e.TrafficStatus)
	m.IsRefill = e.IsRefill
	m.RefillParentID = e.RefillParentID
	m.Version = e.Version
}

// OrderEventModel is the append-only transition log row (spec §3.1, §4.2).
type OrderEventModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	Type      string    `gorm:"type:varchar(32);not null" json:"type"`
	OldStatus string    `gorm:"type:varchar(16);not null" json:"old_status"`
	NewStatus string    `gorm:"type:varchar(16);not null" json:"new_status"`
	Payload   []byte    `gorm:"type:jsonb" json:"payload"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName pins the physical table name.
func (OrderEventModel) TableName() string { return "order_events" }

// BeforeCreate assigns the primary key client-side.
func (m *OrderEventModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// FromEntity populates the row from the domain type, marshaling Payload to JSON.
func (m *OrderEventModel) FromEntity(e *entities.OrderEventEntity) error {
	m.ID = e.ID
	m.OrderID = e.OrderID
	m.Type = string(e.Type)
	m.OldStatus = string(e.OldStatus)
	m.NewStatus = string(e.NewStatus)

	if e.Payload == nil {
		return nil
	}
	payload, err := json.Marshal(e.Payload)
	if err != nil {
		return err
	}
	m.Payload = payload
	return nil
}
