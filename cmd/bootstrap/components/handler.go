package components

import (
	"context"
	"log/slog"

	"ticketing-engine/internal/handler"
	"ticketing-engine/internal/handler/api"
	"ticketing-engine/internal/handler/middleware"
	"ticketing-engine/internal/pkg/clock"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewActivityHandler,
		api.NewTimeslotHandler,
		api.NewOrderHandler,
		api.NewRefundHandler,
		NewHealthHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
		NewMiddlewares,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHealthHandler(pool *pgxpool.Pool, client *redis.Client) *api.HealthHandler {
	deps := map[string]api.Pinger{}
	if pool != nil {
		deps["database"] = pool
	}
	if client != nil {
		deps["redis"] = api.PingFunc(func(ctx context.Context) error { return client.Ping(ctx).Err() })
	}
	return api.NewHealthHandler(deps)
}

func NewHandlers(
	activity *api.ActivityHandler,
	timeslot *api.TimeslotHandler,
	order *api.OrderHandler,
	refund *api.RefundHandler,
	health *api.HealthHandler,
) handler.Handlers {
	return handler.Handlers{
		Activity: activity,
		Timeslot: timeslot,
		Order:    order,
		Refund:   refund,
		Health:   health,
	}
}

func NewMiddlewares(
	auth *middleware.AuthMiddleware,
	store middleware.IdempotencyStore,
	logger *middleware.Logger,
	clk clock.Clock,
	slogger *slog.Logger,
) handler.Middlewares {
	return handler.Middlewares{
		Auth:        auth,
		Idempotency: middleware.Idempotency(store, clk, slogger),
		Logger:      logger,
	}
}
