package di

import (
	"github.com/RodolfoBonis/spooliq/features/ledger/data/repositories"
	"github.com/RodolfoBonis/spooliq/features/ledger/domain/usecases"
	"go.uber.org/fx"
)

// Module exports the ledger feature's (C1) dependency injection module.
var Module = fx.Module(
	"ledger",
	fx.Provide(
		repositories.NewLedgerRepository,
		usecases.NewLedgerUseCase,
	),
)
