package di

import (
	"github.com/RodolfoBonis/spooliq/features/tracker/data/repositories"
	"go.uber.org/fx"
)

// Module exports the Tracker Client feature's (C4) dependency injection module.
var Module = fx.Module(
	"tracker",
	fx.Provide(
		repositories.NewTrackerClient,
	),
)
