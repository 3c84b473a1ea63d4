// Package di wires the Campaign Assigner (C8) and Reconciler (C9) feature.
package di

import (
	"github.com/RodolfoBonis/spooliq/features/campaigns/data/repositories"
	"github.com/RodolfoBonis/spooliq/features/campaigns/domain/usecases"
	"go.uber.org/fx"
)

// Module exports the Campaign Assigner (C8) and Reconciler (C9) feature's
// dependency injection module.
var Module = fx.Module(
	"campaigns",
	fx.Provide(
		repositories.NewCampaignRepository,
		usecases.NewAssignerUseCase,
		usecases.NewReconcilerUseCase,
	),
)
