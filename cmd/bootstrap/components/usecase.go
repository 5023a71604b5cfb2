package components

import (
	"log/slog"

	"ticketing-engine/internal/pkg/clock"
	"ticketing-engine/internal/pkg/config"
	"ticketing-engine/internal/usecase"
	"ticketing-engine/internal/usecase/commands"
	"ticketing-engine/internal/usecase/queries"
	"ticketing-engine/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewActivityCommands,
		commands.NewTimeslotCommands,
		commands.NewRefundCommands,
		func(uow shared.UnitOfWork, publisher shared.BillablePublisher, clk clock.Clock, logger *slog.Logger, cfg config.Config) commands.OrderCommands {
			return commands.NewOrderCommands(uow, publisher, clk, logger, cfg.Order.DefaultCurrency)
		},
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewActivityQueries,
		queries.NewTimeslotQueries,
		queries.NewOrderQueries,
		queries.NewRefundQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
