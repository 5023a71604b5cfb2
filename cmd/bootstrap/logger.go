package bootstrap

import (
	"context"
	"log/slog"

	"ticketing-engine/internal/handler/middleware"
	"ticketing-engine/internal/pkg/config"
	"ticketing-engine/internal/pkg/telemetry"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
		func(l *middleware.Logger) *slog.Logger { return l.Slog() },
	),
	fx.Invoke(InitTelemetry),
)

func NewLogger(cfg config.Config) *middleware.Logger {
	return middleware.NewLogger(cfg.Log)
}

// InitTelemetry installs the tracer provider before anything opens connections,
// so pool and redis instrumentation pick it up.
func InitTelemetry(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) error {
	shutdown, err := telemetry.Init(context.Background(), cfg.Telemetry)
	if err != nil {
		return err
	}
	if cfg.Telemetry.Enabled {
		logger.Info("tracing enabled", "collector", cfg.Telemetry.CollectorAddr, "service", cfg.Telemetry.ServiceName)
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return shutdown(ctx)
		},
	})
	return nil
}
