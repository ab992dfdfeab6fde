// Package sqlite stores dedications one row each in a SQLite database.
// Store order is insert order, newest first.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jsamuelsen/dedication-wall/internal/domain"
)

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

const schema = `CREATE TABLE IF NOT EXISTS dedications (
    seq             INTEGER PRIMARY KEY AUTOINCREMENT,
    id              TEXT NOT NULL UNIQUE,
    sender_name     TEXT NOT NULL,
    sender_class    TEXT NOT NULL,
    recipient_name  TEXT NOT NULL,
    recipient_class TEXT NOT NULL,
    message         TEXT NOT NULL,
    spotify_url     TEXT NOT NULL DEFAULT '',
    song_title      TEXT NOT NULL DEFAULT '',
    song_artist     TEXT NOT NULL DEFAULT '',
    created_at      TEXT NOT NULL
)`

const selectColumns = `id, sender_name, sender_class, recipient_name, recipient_class,
    message, spotify_url, song_title, song_artist, created_at`

// Store implements ports.DedicationStore on SQLite.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open opens or creates the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// One connection keeps writers from interleaving inside this process.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: path, now: time.Now}, nil
}

// SetClock overrides the insert clock.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return "storage:sqlite" }

// Check implements ports.HealthChecker.
func (s *Store) Check(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// List returns every row, newest insert first.
func (s *Store) List(ctx context.Context) ([]domain.Dedication, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM dedications ORDER BY seq DESC`)
	if err != nil {
		return nil, unavailable("list dedications", err)
	}
	defer rows.Close()

	list := make([]domain.Dedication, 0)

	for rows.Next() {
		d, err := scanDedication(rows)
		if err != nil {
			return nil, unavailable("scan dedication", err)
		}

		list = append(list, d)
	}

	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate dedications", err)
	}

	return list, nil
}

// Insert stamps d and stores it as the newest row.
func (s *Store) Insert(ctx context.Context, d domain.Dedication) (domain.Dedication, error) {
	d = d.Stamped(s.now())

	err := retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO dedications (
                id, sender_name, sender_class, recipient_name, recipient_class,
                message, spotify_url, song_title, song_artist, created_at
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			d.ID, d.SenderName, d.SenderClass, d.RecipientName, d.RecipientClass,
			d.Message, d.SpotifyURL, d.SongTitle, d.SongArtist,
			d.Timestamp.UTC().Format(time.RFC3339Nano),
		)

		return err
	})
	if err != nil {
		return domain.Dedication{}, unavailable("insert dedication", err)
	}

	return d, nil
}

// DeleteAt removes the row at position in store order.
func (s *Store) DeleteAt(ctx context.Context, position int) error {
	notFound := domain.NewNotFoundError(domain.EntityDedication, strconv.Itoa(position))
	if position < 0 {
		return notFound
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		var seq int64

		err := tx.QueryRowContext(ctx,
			`SELECT seq FROM dedications ORDER BY seq DESC LIMIT 1 OFFSET ?`, position,
		).Scan(&seq)
		if errors.Is(err, sql.ErrNoRows) {
			return notFound
		}

		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `DELETE FROM dedications WHERE seq = ?`, seq)

		return err
	})
}

// DeleteByID removes the row with id.
func (s *Store) DeleteByID(ctx context.Context, id string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM dedications WHERE id = ?`, id)
		if err != nil {
			return err
		}

		n, err := res.RowsAffected()
		if err != nil {
			return err
		}

		if n == 0 {
			return domain.NewNotFoundError(domain.EntityDedication, id)
		}

		return nil
	})
}

func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	err := retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}

		if err := fn(tx); err != nil {
			_ = tx.Rollback()
			return err
		}

		return tx.Commit()
	})
	if err != nil {
		if domain.IsNotFound(err) {
			return err
		}

		return unavailable("delete dedication", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDedication(row rowScanner) (domain.Dedication, error) {
	var (
		d       domain.Dedication
		created string
	)

	err := row.Scan(
		&d.ID, &d.SenderName, &d.SenderClass, &d.RecipientName, &d.RecipientClass,
		&d.Message, &d.SpotifyURL, &d.SongTitle, &d.SongArtist, &created,
	)
	if err != nil {
		return domain.Dedication{}, err
	}

	d.Timestamp, err = time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return domain.Dedication{}, fmt.Errorf("parse created_at %q: %w", created, err)
	}

	return d, nil
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff

	var lastErr error

	for attempt := range busyRetryAttempts {
		lastErr = op()
		if lastErr == nil {
			return nil
		}

		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}

		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}

	return lastErr
}

func isSQLiteBusy(err error) bool {
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}

	msg := err.Error()

	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.NewUnavailableError("sqlite", "database error"), err)
}
