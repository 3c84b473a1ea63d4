package di

import (
	"github.com/RodolfoBonis/spooliq/features/refill/data/repositories"
	"github.com/RodolfoBonis/spooliq/features/refill/domain/usecases"
	"go.uber.org/fx"
)

// Module exports the Refill Engine feature's (C10) dependency injection module.
var Module = fx.Module(
	"refill",
	fx.Provide(
		repositories.NewRefillRepository,
		usecases.NewRefillUseCase,
	),
)
