// Package blob stores the dedication list as one JSON array held in a single
// slot: a file, a badger key or a redis key. Every mutation rewrites the whole
// array inside the slot's atomic read-modify-write.
package blob

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/samber/lo"

	"github.com/jsamuelsen/dedication-wall/internal/domain"
)

// Slot holds one opaque value.
type Slot interface {
	// Name identifies the slot in logs and readiness output.
	Name() string

	// Load returns the current value, or nil when the slot is empty.
	Load(ctx context.Context) ([]byte, error)

	// Update atomically replaces the value with fn(current). When fn returns
	// an error nothing is written and that error is returned unchanged.
	Update(ctx context.Context, fn func(current []byte) ([]byte, error)) error

	// Check reports whether the slot is reachable.
	Check(ctx context.Context) error

	// Close releases the slot's resources.
	Close() error
}

// Store implements ports.DedicationStore over a Slot.
type Store struct {
	slot   Slot
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the insert clock.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used to report unreadable blobs.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// New creates a Store over slot.
func New(slot Slot, opts ...Option) *Store {
	s := &Store{slot: slot, now: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}

	s.logger = s.logger.With(slog.String("component", "blob.Store"), slog.String("slot", slot.Name()))

	return s
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return "storage:" + s.slot.Name() }

// Check implements ports.HealthChecker.
func (s *Store) Check(ctx context.Context) error { return s.slot.Check(ctx) }

// Close closes the underlying slot.
func (s *Store) Close() error { return s.slot.Close() }

// List decodes the stored array. An empty or corrupt blob reads as an empty list.
func (s *Store) List(ctx context.Context) ([]domain.Dedication, error) {
	data, err := s.slot.Load(ctx)
	if err != nil {
		return nil, unavailable(s.slot, err)
	}

	return s.decode(ctx, data), nil
}

// Insert stamps d and writes it at the head of the array.
func (s *Store) Insert(ctx context.Context, d domain.Dedication) (domain.Dedication, error) {
	d = d.Stamped(s.now())

	err := s.mutate(ctx, func(list []domain.Dedication) ([]domain.Dedication, error) {
		return slices.Insert(list, 0, d), nil
	})
	if err != nil {
		return domain.Dedication{}, err
	}

	return d, nil
}

// DeleteAt removes the record at position.
func (s *Store) DeleteAt(ctx context.Context, position int) error {
	return s.mutate(ctx, func(list []domain.Dedication) ([]domain.Dedication, error) {
		if position < 0 || position >= len(list) {
			return nil, domain.NewNotFoundError(domain.EntityDedication, strconv.Itoa(position))
		}

		return slices.Delete(list, position, position+1), nil
	})
}

// DeleteByID removes the record with id.
func (s *Store) DeleteByID(ctx context.Context, id string) error {
	return s.mutate(ctx, func(list []domain.Dedication) ([]domain.Dedication, error) {
		_, idx, ok := lo.FindIndexOf(list, func(d domain.Dedication) bool { return d.ID == id })
		if !ok || id == "" {
			return nil, domain.NewNotFoundError(domain.EntityDedication, id)
		}

		return slices.Delete(list, idx, idx+1), nil
	})
}

func (s *Store) mutate(ctx context.Context, change func([]domain.Dedication) ([]domain.Dedication, error)) error {
	err := s.slot.Update(ctx, func(current []byte) ([]byte, error) {
		next, err := change(s.decode(ctx, current))
		if err != nil {
			return nil, err
		}

		data, err := json.Marshal(next)
		if err != nil {
			return nil, fmt.Errorf("encoding dedications: %w", err)
		}

		return data, nil
	})
	if err != nil {
		if domain.IsNotFound(err) {
			return err
		}

		return unavailable(s.slot, err)
	}

	return nil
}

func (s *Store) decode(ctx context.Context, data []byte) []domain.Dedication {
	if len(data) == 0 {
		return []domain.Dedication{}
	}

	var list []domain.Dedication
	if err := json.Unmarshal(data, &list); err != nil {
		s.logger.WarnContext(ctx, "stored dedications unreadable, treating as empty", slog.Any("error", err))

		return []domain.Dedication{}
	}

	if list == nil {
		return []domain.Dedication{}
	}

	return list
}

func unavailable(slot Slot, err error) error {
	return fmt.Errorf("%w: %w", domain.NewUnavailableError(slot.Name(), "storage operation failed"), err)
}
