package di

import (
	"github.com/RodolfoBonis/spooliq/features/orders/data/repositories"
	"github.com/RodolfoBonis/spooliq/features/orders/domain/usecases"
	"go.uber.org/fx"
)

// Module exports the Order Store feature's (C2) dependency injection module.
var Module = fx.Module(
	"orders",
	fx.Provide(
		repositories.NewOrderRepository,
		usecases.NewOrderUseCase,
	),
)
