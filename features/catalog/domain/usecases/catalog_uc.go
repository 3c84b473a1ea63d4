// Package usecases implements the Catalog component's read operations:
// service lookup with quantity validation, and coefficient lookup for
// click/view translation (spec §3.1).
package usecases

import (
	"context"

	coreerrors "github.com/RodolfoBonis/spooliq/core/errors"
	"github.com/RodolfoBonis/spooliq/core/money"
	"github.com/RodolfoBonis/spooliq/features/catalog/domain/entities"
	"github.com/RodolfoBonis/spooliq/features/catalog/domain/repositories"
	"github.com/shopspring/decimal"
)

// CatalogUseCase is consumed by C6 (intake pricing/validation) and C8/C9
// (coefficient-driven click/view translation).
type CatalogUseCase interface {
	// PriceOrder loads the service, validates quantity against its bounds,
	// and returns the charge for quantity (spec §4.4 step 2).
	PriceOrder(ctx context.Context, serviceID int64, quantity int64) (*entities.ServiceEntity, decimal.Decimal, error)
	Coefficient(ctx context.Context, serviceID int64, mode entities.ProcessingMode) (decimal.Decimal, error)
}

type catalogUseCase struct {
	repo repositories.CatalogRepository
}

// NewCatalogUseCase wires the catalog repository behind its use case.
func NewCatalogUseCase(repo repositories.CatalogRepository) CatalogUseCase {
	return &catalogUseCase{repo: repo}
}

func (uc *catalogUseCase) PriceOrder(ctx context.Context, serviceID int64, quantity int64) (*entities.ServiceEntity, decimal.Decimal, error) {
	service, err := uc.repo.FindServiceByID(ctx, serviceID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	if !service.Active {
		return nil, decimal.Zero, coreerrors.ValidationError("service is not active", map[string]interface{}{"service_id": serviceID})
	}

	if !service.ValidQuantity(quantity) {
		return nil, decimal.Zero, coreerrors.ValidationError("quantity outside service bounds", map[string]interface{}{
			"service_id": serviceID,
			"quantity":   quantity,
			"min":        service.MinOrderQty,
			"max":        service.MaxOrderQty,
		})
	}

	charge := money.ChargeForQuantity(quantity, service.PricePerThousand)
	return service, charge, nil
}

func (uc *catalogUseCase) Coefficient(ctx context.Context, serviceID int64, mode entities.ProcessingMode) (decimal.Decimal, error) {
	coefficient, err := uc.repo.FindCoefficient(ctx, serviceID, mode)
	if err != nil {
		return decimal.Zero, err
	}
	return coefficient.Coefficient, nil
}
