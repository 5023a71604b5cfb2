package handler

import (
	"log/slog"
	"net/http"

	"ticketing-engine/internal/domain/user"
	"ticketing-engine/internal/handler/api"
	"ticketing-engine/internal/handler/middleware"
	"ticketing-engine/internal/pkg/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Activity *api.ActivityHandler
	Timeslot *api.TimeslotHandler
	Order    *api.OrderHandler
	Refund   *api.RefundHandler
	Health   *api.HealthHandler
}

type Middlewares struct {
	Auth        *middleware.AuthMiddleware
	Idempotency gin.HandlerFunc
	Logger      *middleware.Logger
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, mw Middlewares, logger *slog.Logger) {
	setupMiddleware(engine, cfg, mw, logger)
	setupRoutes(engine, h, mw)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, mw Middlewares, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery(logger))
	engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS, logger))
	engine.Use(mw.Logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, mw Middlewares) {
	engine.GET("/health", h.Health.Check)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	operator := []gin.HandlerFunc{mw.Auth.RequireAuth(), mw.Auth.RequireRoleAtLeast(user.RoleOperator)}

	apiGroup := engine.Group("/api")
	{
		activities := apiGroup.Group("/activities")
		addRoutes(activities, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Activity.List},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Activity.Get},
			{Method: http.MethodGet, Path: "/:id/timeslots", Handler: h.Timeslot.ListByActivity},
			{Method: http.MethodPost, Path: "", Handler: h.Activity.Create, Mw: operator},
			{Method: http.MethodPut, Path: "/:id", Handler: h.Activity.Update, Mw: operator},
			{Method: http.MethodPost, Path: "/:id/publish", Handler: h.Activity.Publish, Mw: operator},
			{Method: http.MethodPost, Path: "/:id/archive", Handler: h.Activity.Archive, Mw: operator},
			{Method: http.MethodPost, Path: "/:id/timeslots", Handler: h.Timeslot.Create, Mw: operator},
		})

		timeslots := apiGroup.Group("/timeslots")
		addRoutes(timeslots, []route{
			{Method: http.MethodGet, Path: "/:id", Handler: h.Timeslot.Get},
			{Method: http.MethodGet, Path: "/:id/seats", Handler: h.Timeslot.ListSeats},
			{Method: http.MethodPut, Path: "/:id", Handler: h.Timeslot.Update, Mw: operator},
			{Method: http.MethodPut, Path: "/:id/capacity", Handler: h.Timeslot.SetCapacity, Mw: operator},
			{Method: http.MethodPut, Path: "/:id/status", Handler: h.Timeslot.ChangeStatus, Mw: operator},
			{Method: http.MethodPost, Path: "/:id/seats", Handler: h.Timeslot.CreateSeats, Mw: operator},
		})

		orders := apiGroup.Group("/orders")
		addRoutes(orders, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Order.Create, Mw: []gin.HandlerFunc{mw.Auth.OptionalAuth(), mw.Idempotency}},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Order.Get},
			{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Order.Cancel},
			{Method: http.MethodPost, Path: "/:id/pay", Handler: h.Order.Pay, Mw: operator},
			{Method: http.MethodPost, Path: "/:id/refunds", Handler: h.Refund.Request},
			{Method: http.MethodGet, Path: "/:id/refunds", Handler: h.Refund.ListByOrder},
		})

		refunds := apiGroup.Group("/refunds")
		refunds.Use(operator...)
		addRoutes(refunds, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Refund.List},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Refund.Get},
			{Method: http.MethodPost, Path: "/:id/approve", Handler: h.Refund.Approve},
			{Method: http.MethodPost, Path: "/:id/reject", Handler: h.Refund.Reject},
			{Method: http.MethodPost, Path: "/:id/complete", Handler: h.Refund.Complete},
		})
	}
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		handlers := append(append([]gin.HandlerFunc{}, r.Mw...), r.Handler)
		g.Handle(r.Method, r.Path, handlers...)
	}
}
