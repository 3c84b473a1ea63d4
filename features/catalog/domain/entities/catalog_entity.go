// Package entities holds the Catalog component's domain types: the priced
// service and its per-mode click/view coefficients (spec §3.1 Service,
// CoefficientTable).
package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProcessingMode selects which coefficient row applies to an order.
type ProcessingMode string

// Processing modes (spec §3.1).
const (
	ModeWithClip    ProcessingMode = "WITH_CLIP"
	ModeWithoutClip ProcessingMode = "WITHOUT_CLIP"
)

// ServiceEntity is a priced catalog entry. Read-mostly; mutated only by
// operator-driven pricing/availability updates.
type ServiceEntity struct {
	ID               int64
	Name             string
	Category         string
	MinOrderQty      int64
	MaxOrderQty      int64
	PricePerThousand decimal.Decimal
	Active           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ValidQuantity reports whether quantity satisfies this service's ordering
// bounds (spec §3.1 invariant: minOrderQty ≥ 1, maxOrderQty ≥ minOrderQty).
func (s *ServiceEntity) ValidQuantity(quantity int64) bool {
	return quantity >= s.MinOrderQty && quantity <= s.MaxOrderQty
}

// CoefficientEntity is a per-service, per-mode click/view multiplier used by
// C8/C9 to translate clicks to views and back (spec §3.1).
type CoefficientEntity struct {
	ServiceID   int64
	Mode        ProcessingMode
	Coefficient decimal.Decimal
}
