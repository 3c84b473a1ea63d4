package models

import (
	"time"

	"github.com/RodolfoBonis/spooliq/features/campaigns/domain/entities"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FixedCampaignModel is the GORM projection of entities.FixedCampaignEntity.
type FixedCampaignModel struct {
	ID                 int64  `gorm:"primaryKey" json:"id"`
	ExternalCampaignID string `gorm:"type:varchar(64);not null;uniqueIndex" json:"external_campaign_id"`
	Name               string `gorm:"type:varchar(255);not null" json:"name"`
	GeoTargeting       string `gorm:"type:varchar(128)" json:"geo_targeting"`
	Priority           int    `gorm:"not null" json:"priority"`
	Weight             int    `gorm:"not null;default:1" json:"weight"`
	Active             bool   `gorm:"not null;default:true;index" json:"active"`
	Description        string `gorm:"type:text" json:"description"`
}

// TableName pins the physical table name.
func (FixedCampaignModel) TableName() string { return "fixed_campaigns" }

// ToEntity converts the row to the domain type.
func (m *FixedCampaignModel) ToEntity() *entities.FixedCampaignEntity {
	return &entities.FixedCampaignEntity{
		ID:                 m.ID,
		ExternalCampaignID: m.ExternalCampaignID,
		Name:               m.Name,
		GeoTargeting:       m.GeoTargeting,
		Priority:           m.Priority,
		Weight:             m.Weight,
		Active:             m.Active,
		Description:        m.Description,
	}
}

// CampaignBindingModel is the GORM projection of entities.CampaignBindingEntity.
// The struct tags declare no covering index on (status, clicksDelivered,
// clicksRequired) WHERE status='ACTIVE' (spec §6.3), and AutoMigrate does
// not create one.
type CampaignBindingModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	OrderID            uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ExternalCampaignID string          `gorm:"type:varchar(64);not null" json:"external_campaign_id"`
	OfferID            string          `gorm:"type:varchar(64);not null" json:"offer_id"`
	ClicksRequired     int64           `gorm:"not null" json:"clicks_required"`
	ClicksDelivered    int64           `gorm:"not null;default:0" json:"clicks_delivered"`
	Conversions        int64           `gorm:"not null;default:0" json:"conversions"`
	Cost               decimal.Decimal `gorm:"type:numeric(18,8);not null;default:0" json:"cost"`
	Revenue            decimal.Decimal `gorm:"type:numeric(18,8);not null;default:0" json:"revenue"`
	BudgetLimit        *decimal.Decimal `gorm:"type:numeric(18,8)" json:"budget_limit"`
	Status             string          `gorm:"type:varchar(16);not null;index" json:"status"`
	PauseReason        *string         `gorm:"type:text" json:"pause_reason"`
	LastStatsAt        *time.Time      `json:"last_stats_at"`
}

// TableName pins the physical table name.
func (CampaignBindingModel) TableName() string { return "campaign_bindings" }

// BeforeCreate assigns the primary key client-side.
func (m *CampaignBindingModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// ToEntity converts the row to the domain type.
func (m *CampaignBindingModel) ToEntity() *entities.CampaignBindingEntity {
	return &entities.CampaignBindingEntity{
		ID:                 m.ID,
		OrderID:            m.OrderID,
		ExternalCampaignID: m.ExternalCampaignID,
		OfferID:            m.OfferID,
		ClicksRequired:     m.ClicksRequired,
		ClicksDelivered:    m.ClicksDelivered,
		Conversions:        m.Conversions,
		Cost:               m.Cost,
		Revenue:            m.Revenue,
		BudgetLimit:        m.BudgetLimit,
		Status:             entities.BindingStatus(m.Status),
		PauseReason:        m.PauseReason,
		LastStatsAt:        m.LastStatsAt,
	}
}

// FromEntity populates the row from the domain type.
func (m *CampaignBindingModel) FromEntity(e *entities.CampaignBindingEntity) {
	m.ID = e.ID
	m.OrderID = e.OrderID
	m.ExternalCampaignID = e.ExternalCampaignID
	m.OfferID = e.OfferID
	m.ClicksRequired = e.ClicksRequired
	m.ClicksDelivered = e.ClicksDelivered
	m.Conversions = e.Conversions
	m.Cost = e.Cost
	m.Revenue = e.Revenue
	m.BudgetLimit = e.BudgetLimit
	m.Status = string(e.Status)
	m.PauseReason = e.PauseReason
	m.LastStatsAt = e.LastStatsAt
}
