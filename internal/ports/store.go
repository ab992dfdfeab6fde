// Package ports defines the interfaces the application layer depends on.
// Adapters under internal/adapters implement them.
//
// Conventions:
//   - context first on every method
//   - domain types in and out, never wire DTOs
//   - failures reported with domain errors (ErrNotFound, ErrUnavailable)
package ports

import (
	"context"

	"github.com/jsamuelsen/dedication-wall/internal/domain"
)

// DedicationStore persists the ordered dedication list.
//
// Store order is insertion order, most recent insert first. Every mutation is
// applied atomically to the whole list: a concurrent List sees either the
// state before or after it, never a partial write.
type DedicationStore interface {
	// List returns every dedication in store order.
	// An empty or unreadable backing yields an empty list.
	List(ctx context.Context) ([]domain.Dedication, error)

	// Insert stamps the record (ID, timestamp when absent), places it first
	// and persists the list. Returns the stored record.
	Insert(ctx context.Context, d domain.Dedication) (domain.Dedication, error)

	// DeleteAt removes the record at the zero-based position in store order.
	// Returns domain.ErrNotFound when position is outside [0, len).
	DeleteAt(ctx context.Context, position int) error

	// DeleteByID removes the record with the given ID.
	// Returns domain.ErrNotFound when no record has it.
	DeleteByID(ctx context.Context, id string) error
}

// SongSource fetches oEmbed metadata for a song link.
// Returns domain.ErrUnavailable when the provider cannot be reached.
type SongSource interface {
	Fetch(ctx context.Context, link string) (domain.OEmbed, error)
}
