package blob

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
)

const maxConflictRetries = 5

// BadgerSlot keeps the value under one key of a badger database.
type BadgerSlot struct {
	db  *badger.DB
	key []byte
	own bool
	mu  sync.Mutex
}

// OpenBadgerSlot opens (or creates) a badger database in dir. An empty dir
// opens an in-memory database.
func OpenBadgerSlot(dir, key string) (*BadgerSlot, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger: %w", err)
	}

	return &BadgerSlot{db: db, key: []byte(key), own: true}, nil
}

// NewBadgerSlot uses an already open database. Close leaves it open.
func NewBadgerSlot(db *badger.DB, key string) *BadgerSlot {
	return &BadgerSlot{db: db, key: []byte(key)}
}

// Name implements Slot.
func (b *BadgerSlot) Name() string { return "badger" }

// Load implements Slot.
func (b *BadgerSlot) Load(context.Context) ([]byte, error) {
	var data []byte

	err := b.db.View(func(txn *badger.Txn) error {
		var err error

		data, err = b.get(txn)

		return err
	})
	if err != nil {
		return nil, fmt.Errorf("reading badger key: %w", err)
	}

	return data, nil
}

// Update implements Slot. Transactions that lose a write conflict are retried.
func (b *BadgerSlot) Update(ctx context.Context, fn func([]byte) ([]byte, error)) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var err error

	for range maxConflictRetries {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		err = b.db.Update(func(txn *badger.Txn) error {
			current, err := b.get(txn)
			if err != nil {
				return err
			}

			next, err := fn(current)
			if err != nil {
				return err
			}

			return txn.Set(b.key, next)
		})
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}

	return fmt.Errorf("updating badger key: %w", err)
}

func (b *BadgerSlot) get(txn *badger.Txn) ([]byte, error) {
	item, err := txn.Get(b.key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return item.ValueCopy(nil)
}

// Check implements Slot.
func (b *BadgerSlot) Check(context.Context) error {
	if b.db.IsClosed() {
		return errors.New("badger database closed")
	}

	return nil
}

// Close implements Slot.
func (b *BadgerSlot) Close() error {
	if !b.own {
		return nil
	}

	return b.db.Close()
}
