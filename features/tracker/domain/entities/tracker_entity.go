// Package entities holds the Tracker Client component's (C4) wire types for
// the external ad tracker's black-box contract (spec §6.2).
package entities

import "github.com/shopspring/decimal"

// CampaignStats is the response shape for getDetailedStats.
type CampaignStats struct {
	Clicks      int64
	Conversions int64
	Cost        decimal.Decimal
	Revenue     decimal.Decimal
}

// Offer is the response shape for createOffer/listOffers.
type Offer struct {
	ID  string
	URL string
}

// UpdateOfferRequest carries the mutable offer fields for updateOffer.
type UpdateOfferRequest struct {
	URL string
}

// SetClickCostRequest carries the per-click cost the tracker should apply.
type SetClickCostRequest struct {
	CampaignID string
	Cost       decimal.Decimal
}
