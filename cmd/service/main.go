// Package main runs the dedication wall HTTP service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jsamuelsen/dedication-wall/internal/adapters/clients"
	"github.com/jsamuelsen/dedication-wall/internal/adapters/clients/acl"
	"github.com/jsamuelsen/dedication-wall/internal/adapters/http"
	"github.com/jsamuelsen/dedication-wall/internal/adapters/http/handlers"
	"github.com/jsamuelsen/dedication-wall/internal/adapters/storage"
	"github.com/jsamuelsen/dedication-wall/internal/app"
	"github.com/jsamuelsen/dedication-wall/internal/platform/config"
	"github.com/jsamuelsen/dedication-wall/internal/platform/logging"
	"github.com/jsamuelsen/dedication-wall/internal/platform/telemetry"
	"github.com/jsamuelsen/dedication-wall/internal/ports"
)

// Build-time variables, injected via ldflags:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD)"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	location, err := cfg.Presentation.Location()
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(loggingConfig(cfg))
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("storage", cfg.Storage.Backend),
	)

	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	healthRegistry := ports.NewHealthRegistry()

	store, err := storage.Open(ctx, cfg.Storage, cfg.Client, logger)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			logger.Error("storage close error", slog.Any("error", closeErr))
		}
	}()

	if err := healthRegistry.Register(store); err != nil {
		return fmt.Errorf("registering storage health check: %w", err)
	}

	songs, err := songSource(cfg, logger)
	if err != nil {
		return err
	}

	serviceCfg := app.DedicationServiceConfig{
		Store:    store,
		Location: location,
		Logger:   logger,
	}

	if songs != nil {
		serviceCfg.Songs = songs

		if err := healthRegistry.Register(songs); err != nil {
			return fmt.Errorf("registering oembed health check: %w", err)
		}
	}

	service := app.NewDedicationService(serviceCfg)

	server := http.New(&cfg.Server, logger)
	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:            logger,
		ServiceName:       cfg.App.Name,
		HealthHandler:     handlers.NewHealthHandler(healthRegistry, handlers.NewBuildInfo(Version, Commit, BuildTime), store.Kind()),
		DedicationHandler: handlers.NewDedicationHandler(service),
		BoardHandler:      handlers.NewBoardHandler(service),
		Timeout:           cfg.Server.RequestTimeout,
	})

	serverErr := server.Start()

	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// songSource returns the oEmbed adapter, or nil when lookups are disabled.
func songSource(cfg *config.Config, logger *slog.Logger) (*acl.OEmbedClient, error) {
	if !cfg.Services.OEmbed.Enabled {
		logger.Info("song lookups disabled")
		return nil, nil
	}

	client, err := clients.New(clients.ConfigFor(cfg.Services.OEmbed.BaseURL, cfg.Services.OEmbed.Name, cfg.Client, logger))
	if err != nil {
		return nil, fmt.Errorf("creating oembed client: %w", err)
	}

	return acl.NewOEmbedClient(client, logger), nil
}

func loggingConfig(cfg *config.Config) *logging.Config {
	return &logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	}
}

// waitForShutdown blocks until SIGINT/SIGTERM or a server error, then
// drains in-flight requests within shutdownTimeout.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-serverErr:
		if ok && err != nil {
			return fmt.Errorf("server error: %w", err)
		}

		return nil

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
