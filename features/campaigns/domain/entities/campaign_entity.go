// Package entities holds the Campaign Assigner (C8) and Reconciler (C9)
// domain types: the fixed campaign pool and per-order bindings (spec §3.1
// FixedCampaign, CampaignBinding).
package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FixedCampaignEntity is an element of the small, fixed pool of tracker
// campaigns. Exactly three must be active for assignment to proceed
// (spec §3.1, §4.6 step 1).
type FixedCampaignEntity struct {
	ID                 int64
	ExternalCampaignID string
	Name               string
	GeoTargeting       string
	Priority           int
	Weight             int
	Active             bool
	Description        string
}

// BindingStatus enumerates CampaignBinding.status.
type BindingStatus string

// Binding statuses (spec §3.1).
const (
	BindingActive   BindingStatus = "ACTIVE"
	BindingPaused   BindingStatus = "PAUSED"
	BindingFinished BindingStatus = "FINISHED"
)

// CampaignBindingEntity is a per-order row produced by C8 and updated by C9
// (spec §3.1).
type CampaignBindingEntity struct {
	ID                 uuid.UUID
	OrderID            uuid.UUID
	ExternalCampaignID string
	OfferID            string
	ClicksRequired     int64
	ClicksDelivered    int64
	Conversions        int64
	Cost               decimal.Decimal
	Revenue            decimal.Decimal
	BudgetLimit        *decimal.Decimal
	Status             BindingStatus
	PauseReason        *string
	LastStatsAt        *time.Time
}
