// Package app contains the use cases of the dedication wall. Services depend
// on ports only; concrete storage and metadata adapters are injected by main.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/jsamuelsen/dedication-wall/internal/domain"
	"github.com/jsamuelsen/dedication-wall/internal/platform/logging"
	"github.com/jsamuelsen/dedication-wall/internal/ports"
	"github.com/jsamuelsen/dedication-wall/internal/presentation"
)

// Placeholders offered for the artist field when it has to be typed by hand.
const (
	PlaceholderArtistMissing = "Enter artist name (Spotify didn't provide it)"
	PlaceholderLookupFailed  = "Enter artist name (Spotify API error)"
)

// SongLookup is the outcome of resolving a song link for the submission form.
// Editable means the user should confirm or type the title and artist.
type SongLookup struct {
	URL            string `json:"url"`
	TrackID        string `json:"trackId"`
	Title          string `json:"title"`
	Artist         string `json:"artist"`
	ArtistResolved bool   `json:"artistResolved"`
	Editable       bool   `json:"editable"`
	Placeholder    string `json:"placeholder,omitempty"`
}

// DedicationService implements listing, submitting and deleting dedications
// and song lookups for the submission form.
type DedicationService struct {
	store     ports.DedicationStore
	songs     ports.SongSource
	validator *Validator
	executor  *Executor
	location  *time.Location
	now       func() time.Time
	logger    *slog.Logger

	// mu serializes mutations issued through this service.
	mu sync.Mutex
}

// DedicationServiceConfig holds the dependencies of DedicationService.
// Store is required; the rest have defaults.
type DedicationServiceConfig struct {
	Store     ports.DedicationStore
	Songs     ports.SongSource
	Validator *Validator
	Location  *time.Location
	Now       func() time.Time
	Logger    *slog.Logger
}

// NewDedicationService creates the service. It panics when Store is nil.
func NewDedicationService(cfg DedicationServiceConfig) *DedicationService {
	if cfg.Store == nil {
		panic("app: DedicationServiceConfig.Store is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	validator := cfg.Validator
	if validator == nil {
		validator = NewValidator()
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	location := cfg.Location
	if location == nil {
		location = time.UTC
	}

	logger = logger.With(slog.String("component", "app.DedicationService"))

	return &DedicationService{
		store:     cfg.Store,
		songs:     cfg.Songs,
		validator: validator,
		executor:  NewExecutor(logger),
		location:  location,
		now:       now,
		logger:    logger,
	}
}

func (s *DedicationService) log(ctx context.Context) *slog.Logger {
	return logging.FromContextOr(ctx, s.logger)
}

// List returns every dedication, newest first.
func (s *DedicationService) List(ctx context.Context) ([]domain.Dedication, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing dedications: %w", err)
	}

	return domain.SortNewestFirst(list), nil
}

// Board returns the wall as a view model at the current time.
func (s *DedicationService) Board(ctx context.Context) (presentation.Board, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return presentation.Board{}, fmt.Errorf("building board: %w", err)
	}

	return presentation.BuildBoard(list, s.now(), s.location), nil
}

// Submit validates d, stores it, and confirms it by reading the list back.
// Validation failures return domain.FieldErrors without touching the store.
func (s *DedicationService) Submit(ctx context.Context, d domain.Dedication) (domain.Dedication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	op := Operation[domain.Dedication, domain.Dedication, domain.Dedication, domain.Dedication]{
		Name: "SubmitDedication",
		Validate: func(_ context.Context, in domain.Dedication) error {
			if err := s.validator.Validate(in); err != nil {
				dedicationsRejected.Inc()

				return err
			}

			return nil
		},
		Perform: func(ctx context.Context, in domain.Dedication) (domain.Dedication, error) {
			return s.store.Insert(ctx, in.Stamped(s.now()))
		},
		Verify: func(ctx context.Context, _ domain.Dedication, stored domain.Dedication) (domain.Dedication, error) {
			list, err := s.store.List(ctx)
			if err != nil {
				return domain.Dedication{}, fmt.Errorf("re-reading list: %w", err)
			}

			if domain.IndexOf(list, stored) < 0 {
				return domain.Dedication{}, domain.NewUnavailableError("storage", "stored dedication missing on re-read")
			}

			return stored, nil
		},
		Archive: func(context.Context, domain.Dedication, domain.Dedication) error {
			dedicationsSubmitted.Inc()

			return nil
		},
		Respond: func(_ context.Context, _ domain.Dedication, verified domain.Dedication) (domain.Dedication, error) {
			return verified, nil
		},
	}

	return Execute(ctx, s.executor, op, d)
}

// DeleteAt removes the dedication shown at position in the newest-first list.
func (s *DedicationService) DeleteAt(ctx context.Context, position int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.store.List(ctx)
	if err != nil {
		return fmt.Errorf("listing dedications: %w", err)
	}

	if position < 0 || position >= len(raw) {
		return domain.NewNotFoundError(domain.EntityDedication, strconv.Itoa(position))
	}

	target := domain.SortNewestFirst(raw)[position]

	storePosition := domain.IndexOf(raw, target)
	if target.ID != "" {
		err = s.store.DeleteByID(ctx, target.ID)
	} else {
		err = s.store.DeleteAt(ctx, storePosition)
	}

	if err != nil {
		return fmt.Errorf("deleting dedication at %d: %w", position, err)
	}

	dedicationsDeleted.Inc()
	s.log(ctx).InfoContext(ctx, "dedication deleted",
		slog.Int("position", position),
		slog.String("dedication_id", target.ID),
	)

	return nil
}

// DeleteByID removes the dedication with the given ID.
func (s *DedicationService) DeleteByID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("deleting dedication %q: %w", id, err)
	}

	dedicationsDeleted.Inc()
	s.log(ctx).InfoContext(ctx, "dedication deleted", slog.String("dedication_id", id))

	return nil
}

// LookupSong resolves title and artist for a Spotify track link. A link that
// is not a track is a validation error. Provider failures never fail the
// lookup: the result comes back empty and editable instead.
func (s *DedicationService) LookupSong(ctx context.Context, link string) (SongLookup, error) {
	trackID, ok := domain.SpotifyTrackID(link)
	if !ok {
		return SongLookup{}, domain.NewValidationError("url", "Please enter a Spotify track link")
	}

	result := SongLookup{URL: link, TrackID: trackID}

	if s.songs == nil {
		songLookups.WithLabelValues(lookupFailed).Inc()

		result.Editable = true
		result.Placeholder = PlaceholderLookupFailed

		return result, nil
	}

	embed, err := s.songs.Fetch(ctx, link)
	if err != nil {
		songLookups.WithLabelValues(lookupFailed).Inc()
		s.log(ctx).WarnContext(ctx, "song metadata unavailable",
			slog.String("track_id", trackID),
			slog.Any("error", err),
		)

		result.Editable = true
		result.Placeholder = PlaceholderLookupFailed

		return result, nil
	}

	song := domain.ExtractSong(embed)
	result.Title = song.Title
	result.Artist = song.Artist
	result.ArtistResolved = song.ArtistResolved

	if !song.ArtistResolved {
		songLookups.WithLabelValues(lookupUnresolved).Inc()

		result.Editable = true
		result.Placeholder = PlaceholderArtistMissing

		return result, nil
	}

	songLookups.WithLabelValues(lookupResolved).Inc()

	return result, nil
}
