package components

import (
	"context"
	"log/slog"

	"ticketing-engine/internal/infra/db"
	"ticketing-engine/internal/infra/memstore"
	"ticketing-engine/internal/infra/uow"
	"ticketing-engine/internal/pkg/config"
	"ticketing-engine/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewStorage,
	),
)

type Storage struct {
	fx.Out

	UoW shared.UnitOfWork
	// Pool is nil with the memory driver.
	Pool *pgxpool.Pool
}

func NewStorage(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (Storage, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		logger.Warn("using in-memory storage; data is lost on restart")
		return Storage{UoW: memstore.New(logger)}, nil
	}

	pool, cleanup, err := db.Connect(context.Background(), cfg.DB, logger)
	if err != nil {
		return Storage{}, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})
	return Storage{
		UoW:  uow.NewPostgresUoW(pool, logger, cfg.DB.TxMaxRetries),
		Pool: pool,
	}, nil
}
