package di

import (
	"github.com/RodolfoBonis/spooliq/features/catalog/data/repositories"
	"github.com/RodolfoBonis/spooliq/features/catalog/domain/usecases"
	"go.uber.org/fx"
)

// Module exports the catalog feature's dependency injection module.
var Module = fx.Module(
	"catalog",
	fx.Provide(
		repositories.NewCatalogRepository,
		usecases.NewCatalogUseCase,
	),
)
