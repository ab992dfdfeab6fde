package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/dedication-wall/internal/adapters/http/handlers"
	"github.com/jsamuelsen/dedication-wall/internal/adapters/http/middleware"
	"github.com/jsamuelsen/dedication-wall/internal/platform/telemetry"
)

// DefaultRequestTimeout applies when RouterConfig.Timeout is zero.
const DefaultRequestTimeout = 10 * time.Second

// RouterConfig holds what SetupRouter wires together. Nil handlers leave
// their routes unregistered.
type RouterConfig struct {
	Logger            *slog.Logger
	ServiceName       string
	HealthHandler     *handlers.HealthHandler
	DedicationHandler *handlers.DedicationHandler
	BoardHandler      *handlers.BoardHandler

	// Timeout is the deadline of every /api request.
	Timeout time.Duration
}

// SetupRouter installs middleware and routes on engine. Middleware order:
//  1. ContextLogger: service logger into the request context
//  2. Recovery
//  3. RequestID, CorrelationID
//  4. telemetry: otelgin spans and HTTP metrics
//  5. Logging (skips /-/ probes)
//
// Routes:
//   - /-/live, /-/ready, /-/build, /-/metrics
//   - /api/... with a per-request deadline
//   - / the rendered wall
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	engine.Use(
		middleware.ContextLogger(logger),
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(cfg.ServiceName)...)
	engine.Use(middleware.Logging())

	engine.NoRoute(NoRoute)
	engine.NoMethod(NoRoute)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	api := engine.Group("/api")
	api.Use(middleware.Timeout(timeout))

	if cfg.HealthHandler != nil {
		api.GET("/health", cfg.HealthHandler.APIHealth)
	}

	if cfg.DedicationHandler != nil {
		cfg.DedicationHandler.RegisterDedicationRoutes(api)
	}

	if cfg.BoardHandler != nil {
		cfg.BoardHandler.RegisterBoardRoutes(engine, api)
	}
}
