package di

import (
	"github.com/RodolfoBonis/spooliq/features/ingress/domain/usecases"
	"go.uber.org/fx"
)

// Module exports Result Ingress's (C11) dependency injection module.
var Module = fx.Module(
	"ingress",
	fx.Provide(
		usecases.NewIngressUseCase,
	),
)
