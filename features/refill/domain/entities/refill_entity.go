// Package entities holds the Refill Engine's (C10) audit type (spec §3.1
// OrderRefill).
package entities

import (
	"time"

	"github.com/google/uuid"
)

// OrderRefillEntity is the immutable audit row linking a parent order to its
// zero-charge refill child. Unique on (OriginalOrderID, RefillNumber)
// (spec §3.1, §4.7 step 12).
type OrderRefillEntity struct {
	ID                  uuid.UUID
	OriginalOrderID     uuid.UUID
	RefillOrderID       uuid.UUID
	RefillNumber        int
	OriginalQuantity    int64
	DeliveredQuantity   int64
	RefillQuantity      int64
	StartCountAtRefill  int64
	CreatedAt           time.Time
}

// RefillResult is createRefill's return value (spec §4.7).
type RefillResult struct {
	RefillOrderID uuid.UUID
	RefillNumber  int
	RefillQty     int64
}
