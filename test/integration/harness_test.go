//go:build integration

package integration

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	wallhttp "github.com/jsamuelsen/dedication-wall/internal/adapters/http"
	"github.com/jsamuelsen/dedication-wall/internal/adapters/http/handlers"
	"github.com/jsamuelsen/dedication-wall/internal/app"
	"github.com/jsamuelsen/dedication-wall/internal/platform/config"
	"github.com/jsamuelsen/dedication-wall/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testServerConfig() *config.ServerConfig {
	return &config.ServerConfig{
		Host:           "127.0.0.1",
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    30 * time.Second,
		RequestTimeout: 5 * time.Second,
		MaxRequestSize: config.DefaultMaxRequestSize,
	}
}

// testClock is a manually advanced clock shared by a store and the service.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 6, 12, 8, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

// wall is the full HTTP stack served by httptest.
type wall struct {
	server  *httptest.Server
	service *app.DedicationService
}

type wallOptions struct {
	store   ports.DedicationStore
	songs   ports.SongSource
	now     func() time.Time
	backend string
}

// startWall serves the router over opts.store. Callers close the result.
func startWall(opts wallOptions) *wall {
	logger := discardLogger()

	registry := ports.NewHealthRegistry()
	if checker, ok := opts.store.(ports.HealthChecker); ok {
		_ = registry.Register(checker)
	}

	if opts.backend == "" {
		opts.backend = config.BackendMemory
	}

	service := app.NewDedicationService(app.DedicationServiceConfig{
		Store:  opts.store,
		Songs:  opts.songs,
		Now:    opts.now,
		Logger: logger,
	})

	server := wallhttp.New(testServerConfig(), logger)
	wallhttp.SetupRouter(server.Engine(), wallhttp.RouterConfig{
		Logger:            logger,
		ServiceName:       "dedication-wall-integration",
		HealthHandler:     handlers.NewHealthHandler(registry, handlers.NewBuildInfo("integration", "none", ""), opts.backend),
		DedicationHandler: handlers.NewDedicationHandler(service),
		BoardHandler:      handlers.NewBoardHandler(service),
		Timeout:           testServerConfig().RequestTimeout,
	})

	return &wall{
		server:  httptest.NewServer(server.Engine()),
		service: service,
	}
}

func (w *wall) URL() string { return w.server.URL }

func (w *wall) Close() { w.server.Close() }
