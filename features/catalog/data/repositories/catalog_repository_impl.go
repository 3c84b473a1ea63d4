package repositories

import (
	"context"
	"fmt"

	coreerrors "github.com/RodolfoBonis/spooliq/core/errors"
	"github.com/RodolfoBonis/spooliq/features/catalog/data/models"
	"github.com/RodolfoBonis/spooliq/features/catalog/domain/entities"
	"github.com/RodolfoBonis/spooliq/features/catalog/domain/repositories"
	"gorm.io/gorm"
)

type catalogRepositoryImpl struct {
	db *gorm.DB
}

// NewCatalogRepository builds the catalog's read-mostly storage adapter.
func NewCatalogRepository(db *gorm.DB) repositories.CatalogRepository {
	return &catalogRepositoryImpl{db: db}
}

func (r *catalogRepositoryImpl) FindServiceByID(ctx context.Context, serviceID int64) (*entities.ServiceEntity, error) {
	model := &models.ServiceModel{}
	err := r.db.WithContext(ctx).First(model, "id = ?", serviceID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, coreerrors.NotFound(fmt.Sprintf("service %d not found", serviceID))
		}
		return nil, fmt.Errorf("catalog: failed to load service: %w", err)
	}
	return model.ToEntity(), nil
}

func (r *catalogRepositoryImpl) FindCoefficient(ctx context.Context, serviceID int64, mode entities.ProcessingMode) (*entities.CoefficientEntity, error) {
	model := &models.CoefficientModel{}
	err := r.db.WithContext(ctx).First(model, "service_id = ? AND mode = ?", serviceID, string(mode)).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, coreerrors.NotFound(fmt.Sprintf("coefficient for service %d mode %s not found", serviceID, mode))
		}
		return nil, fmt.Errorf("catalog: failed to load coefficient: %w", err)
	}
	return model.ToEntity(), nil
}
