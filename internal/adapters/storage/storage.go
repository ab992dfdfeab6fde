// Package storage opens the dedication store selected by configuration.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/dedication-wall/internal/adapters/clients"
	"github.com/jsamuelsen/dedication-wall/internal/adapters/clients/acl"
	"github.com/jsamuelsen/dedication-wall/internal/adapters/storage/blob"
	"github.com/jsamuelsen/dedication-wall/internal/adapters/storage/memory"
	"github.com/jsamuelsen/dedication-wall/internal/adapters/storage/sqlite"
	"github.com/jsamuelsen/dedication-wall/internal/platform/config"
	"github.com/jsamuelsen/dedication-wall/internal/ports"
)

// ErrUnknownBackend is returned for a backend name Open does not know.
var ErrUnknownBackend = errors.New("unknown storage backend")

// checkedStore is what every backing provides.
type checkedStore interface {
	ports.DedicationStore
	ports.HealthChecker
}

// Backend is an opened store. Close releases files, connections and locks.
type Backend struct {
	checkedStore

	kind    string
	closeFn func() error
}

// Kind returns the configured backend name, e.g. "sqlite".
func (b *Backend) Kind() string { return b.kind }

// Close releases the backing's resources. It is safe to call twice.
func (b *Backend) Close() error {
	if b.closeFn == nil {
		return nil
	}

	fn := b.closeFn
	b.closeFn = nil

	return fn()
}

// Open opens the backend named by cfg.Backend. shared configures the HTTP
// client of the remote and baserow backends.
func Open(ctx context.Context, cfg config.StorageConfig, shared config.ClientConfig, logger *slog.Logger) (*Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(slog.String("storage", cfg.Backend))

	switch cfg.Backend {
	case config.BackendMemory:
		return &Backend{checkedStore: memory.New(), kind: cfg.Backend}, nil

	case config.BackendFile:
		slot, err := blob.NewFileSlot(cfg.File.Path)
		if err != nil {
			return nil, fmt.Errorf("opening file storage: %w", err)
		}

		return blobBackend(cfg.Backend, slot, logger), nil

	case config.BackendBadger:
		slot, err := blob.OpenBadgerSlot(cfg.Badger.Dir, cfg.Badger.Key)
		if err != nil {
			return nil, fmt.Errorf("opening badger storage: %w", err)
		}

		return blobBackend(cfg.Backend, slot, logger), nil

	case config.BackendRedis:
		slot, err := blob.OpenRedisSlot(cfg.Redis.URL, cfg.Redis.Key)
		if err != nil {
			return nil, fmt.Errorf("opening redis storage: %w", err)
		}

		return blobBackend(cfg.Backend, slot, logger), nil

	case config.BackendSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite storage: %w", err)
		}

		return &Backend{checkedStore: store, kind: cfg.Backend, closeFn: store.Close}, nil

	case config.BackendRemote:
		client, err := clients.New(clients.ConfigFor(cfg.Remote.BaseURL, cfg.Remote.Name, shared, logger))
		if err != nil {
			return nil, fmt.Errorf("creating remote storage client: %w", err)
		}

		return &Backend{checkedStore: acl.NewDedicationClient(client), kind: cfg.Backend}, nil

	case config.BackendBaserow:
		clientCfg := clients.ConfigFor(cfg.Baserow.BaseURL, cfg.Baserow.Name, shared, logger)
		clientCfg.AuthFunc = acl.BaserowAuth(cfg.Baserow.Token)

		client, err := clients.New(clientCfg)
		if err != nil {
			return nil, fmt.Errorf("creating baserow client: %w", err)
		}

		return &Backend{checkedStore: acl.NewBaserowClient(client, cfg.Baserow.TableID), kind: cfg.Backend}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

func blobBackend(kind string, slot blob.Slot, logger *slog.Logger) *Backend {
	store := blob.New(slot, blob.WithLogger(logger))

	return &Backend{checkedStore: store, kind: kind, closeFn: store.Close}
}
