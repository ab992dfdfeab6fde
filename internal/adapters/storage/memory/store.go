// Package memory is a process-local dedication store. Its contents are lost
// when the process exits.
package memory

import (
	"context"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/jsamuelsen/dedication-wall/internal/domain"
)

// Store keeps the list in memory.
type Store struct {
	mu    sync.RWMutex
	items []domain.Dedication
	now   func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{now: time.Now}
}

// NewWithClock returns an empty store stamping inserts with now.
func NewWithClock(now func() time.Time) *Store {
	return &Store{now: now}
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return "storage:memory" }

// Check implements ports.HealthChecker. Memory is always available.
func (s *Store) Check(context.Context) error { return nil }

// List returns a copy of the list.
func (s *Store) List(context.Context) ([]domain.Dedication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.items), nil
}

// Insert stamps d and places it first.
func (s *Store) Insert(_ context.Context, d domain.Dedication) (domain.Dedication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d = d.Stamped(s.now())
	s.items = slices.Insert(s.items, 0, d)

	return d, nil
}

// DeleteAt removes the record at position.
func (s *Store) DeleteAt(_ context.Context, position int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if position < 0 || position >= len(s.items) {
		return domain.NewNotFoundError(domain.EntityDedication, strconv.Itoa(position))
	}

	s.items = slices.Delete(s.items, position, position+1)

	return nil
}

// DeleteByID removes the record with id.
func (s *Store) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, idx, ok := lo.FindIndexOf(s.items, func(d domain.Dedication) bool { return d.ID == id })
	if !ok || id == "" {
		return domain.NewNotFoundError(domain.EntityDedication, id)
	}

	s.items = slices.Delete(s.items, idx, idx+1)

	return nil
}
