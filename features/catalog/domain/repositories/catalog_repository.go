package repositories

import (
	"context"

	"github.com/RodolfoBonis/spooliq/features/catalog/domain/entities"
)

// CatalogRepository reads service and coefficient rows. Writes are an
// operator-only administrative path, out of scope for the fulfillment
// pipeline itself.
type CatalogRepository interface {
	FindServiceByID(ctx context.Context, serviceID int64) (*entities.ServiceEntity, error)
	FindCoefficient(ctx context.Context, serviceID int64, mode entities.ProcessingMode) (*entities.CoefficientEntity, error)
}
