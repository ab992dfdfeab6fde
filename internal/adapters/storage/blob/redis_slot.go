package blob

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisSlot keeps the value under one redis key. Updates use WATCH/MULTI so
// a concurrent writer forces a retry instead of a lost update.
type RedisSlot struct {
	client *redis.Client
	key    string
}

// OpenRedisSlot connects using a redis:// or rediss:// URL.
func OpenRedisSlot(url, key string) (*RedisSlot, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	return NewRedisSlot(redis.NewClient(opts), key), nil
}

// NewRedisSlot uses an existing client.
func NewRedisSlot(client *redis.Client, key string) *RedisSlot {
	return &RedisSlot{client: client, key: key}
}

// Name implements Slot.
func (r *RedisSlot) Name() string { return "redis" }

// Load implements Slot.
func (r *RedisSlot) Load(ctx context.Context) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading redis key: %w", err)
	}

	return data, nil
}

// Update implements Slot.
func (r *RedisSlot) Update(ctx context.Context, fn func([]byte) ([]byte, error)) error {
	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, r.key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("reading redis key: %w", err)
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, r.key, next, 0)
			return nil
		})

		return err
	}

	var err error

	for range maxConflictRetries {
		err = r.client.Watch(ctx, txf, r.key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}

	return fmt.Errorf("updating redis key: %w", err)
}

// Check implements Slot.
func (r *RedisSlot) Check(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close implements Slot.
func (r *RedisSlot) Close() error {
	return r.client.Close()
}
