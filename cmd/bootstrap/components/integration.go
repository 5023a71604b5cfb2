package components

import (
	"context"
	"log/slog"

	"ticketing-engine/internal/handler/middleware"
	"ticketing-engine/internal/infra/idempotency"
	"ticketing-engine/internal/infra/messaging"
	"ticketing-engine/internal/pkg/config"
	"ticketing-engine/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// IntegrationModule wires the optional Redis and Kafka backends.
var IntegrationModule = fx.Module("integration",
	fx.Provide(
		NewRedisClient,
		NewIdempotencyStore,
		NewBillablePublisher,
	),
)

// NewRedisClient returns nil when REDIS_ADDR is empty.
func NewRedisClient(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*redis.Client, error) {
	if cfg.Redis.Addr == "" {
		logger.Info("redis disabled; Idempotency-Key headers are ignored")
		return nil, nil
	}
	client, err := idempotency.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

func NewIdempotencyStore(client *redis.Client, cfg config.Config) middleware.IdempotencyStore {
	if client == nil {
		return nil
	}
	return idempotency.NewRedisStore(client, cfg.Redis)
}

func NewBillablePublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) shared.BillablePublisher {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Info("kafka disabled; billable facts are only logged")
		return messaging.NewLogPublisher(logger)
	}
	publisher := messaging.NewKafkaPublisher(messaging.NewKafkaWriter(cfg.Kafka), cfg.Kafka, logger)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})
	return publisher
}
