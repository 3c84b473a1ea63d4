package di

import (
	"github.com/RodolfoBonis/spooliq/features/video/data/repositories"
	"github.com/RodolfoBonis/spooliq/features/video/domain/usecases"
	"go.uber.org/fx"
)

// Module exports the Video Client (C5) and Video-Processing Worker (C7)
// feature's dependency injection module.
var Module = fx.Module(
	"video",
	fx.Provide(
		repositories.NewVideoClient,
		repositories.NewAccountRepository,
		repositories.NewVideoProcessingRepository,
		usecases.NewVideoProcessingUseCase,
	),
)
