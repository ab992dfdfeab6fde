package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jsamuelsen/dedication-wall/internal/adapters/clients"
	"github.com/jsamuelsen/dedication-wall/internal/adapters/clients/acl"
	"github.com/jsamuelsen/dedication-wall/internal/adapters/storage"
	"github.com/jsamuelsen/dedication-wall/internal/app"
	"github.com/jsamuelsen/dedication-wall/internal/platform/config"
	"github.com/jsamuelsen/dedication-wall/internal/platform/logging"
)

// commandContext carries flag values and lazily opened dependencies shared
// by every subcommand of one invocation.
type commandContext struct {
	configDir string
	profile   string
	backend   string
	remote    string
	verbose   bool

	// stderr receives log output.
	stderr io.Writer

	config   *config.Config
	location *time.Location
	logger   *slog.Logger
	service  *app.DedicationService
	store    *storage.Backend
}

func newCommandContext() *commandContext {
	return &commandContext{stderr: os.Stderr}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.config != nil {
		return c.config, nil
	}

	profile := strings.TrimSpace(c.profile)
	if profile == "" {
		profile = os.Getenv("APP_ENVIRONMENT")
	}

	if profile == "" {
		profile = "local"
	}

	cfg, err := config.LoadFrom(c.configDir, profile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if c.remote != "" {
		cfg.Storage.Backend = "remote"
		cfg.Storage.Remote.BaseURL = strings.TrimRight(c.remote, "/")
	} else if c.backend != "" {
		cfg.Storage.Backend = c.backend
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	location, err := cfg.Presentation.Location()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	c.config = cfg
	c.location = location

	return cfg, nil
}

func (c *commandContext) ensureLogger() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}

	level := "warn"
	if c.verbose {
		level = "debug"
	}

	c.logger = logging.NewWithWriter(&logging.Config{Level: level, Format: "pretty", Service: "dedications"}, c.stderr)

	return c.logger
}

// ensureService opens the configured store and builds the service on first use.
func (c *commandContext) ensureService(ctx context.Context) (*app.DedicationService, error) {
	if c.service != nil {
		return c.service, nil
	}

	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	logger := c.ensureLogger()

	store, err := storage.Open(ctx, cfg.Storage, cfg.Client, logger)
	if err != nil {
		return nil, err
	}

	serviceCfg := app.DedicationServiceConfig{
		Store:    store,
		Location: c.location,
		Logger:   logger,
	}

	if cfg.Services.OEmbed.Enabled {
		client, err := clients.New(clients.ConfigFor(cfg.Services.OEmbed.BaseURL, cfg.Services.OEmbed.Name, cfg.Client, logger))
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("creating oembed client: %w", err)
		}

		serviceCfg.Songs = acl.NewOEmbedClient(client, logger)
	}

	c.store = store
	c.service = app.NewDedicationService(serviceCfg)

	return c.service, nil
}

// withService runs fn with the service and closes the store afterwards.
func (c *commandContext) withService(ctx context.Context, fn func(*app.DedicationService) error) error {
	service, err := c.ensureService(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if c.store != nil {
			if closeErr := c.store.Close(); closeErr != nil {
				c.ensureLogger().Warn("closing storage", slog.Any("error", closeErr))
			}
		}
	}()

	return fn(service)
}

// timeLocation returns the display zone, UTC before the config is loaded.
func (c *commandContext) timeLocation() *time.Location {
	if c.location == nil {
		return time.UTC
	}

	return c.location
}
