package di

import (
	"github.com/RodolfoBonis/spooliq/features/intake/domain/usecases"
	"go.uber.org/fx"
)

// Module exports the Order Intake feature's (C6) dependency injection module.
var Module = fx.Module(
	"intake",
	fx.Provide(
		usecases.NewIntakeUseCase,
	),
)
