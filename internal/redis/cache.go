package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// maxUpdateAttempts bounds optimistic retries when a watched key keeps changing.
const maxUpdateAttempts = 100

var ErrUpdateConflict = errors.New("concurrent update did not settle")

type Cache[T any] interface {
	Get(ctx context.Context, key string) (*T, error)
	Set(ctx context.Context, key string, value *T) error
	Update(ctx context.Context, key string, fn func(current *T) (*T, error)) error
	Touch(ctx context.Context, key string) error
	Delete(ctx context.Context, key string) error
}

// JSONCache stores values as JSON under "<prefix>:<key>". A nil cache or a
// cache without a client behaves as an always-empty cache.
type JSONCache[T any] struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewJSONCache[T any](client *redis.Client, prefix string, ttl time.Duration) *JSONCache[T] {
	return &JSONCache[T]{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (c *JSONCache[T]) key(key string) string {
	return c.prefix + ":" + key
}

func (c *JSONCache[T]) Get(ctx context.Context, key string) (*T, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}

	return c.decode(c.client.Get(ctx, c.key(key)))
}

func (c *JSONCache[T]) decode(cmd *redis.StringCmd) (*T, error) {
	value, err := cmd.Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var item T
	if err := json.Unmarshal([]byte(value), &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", c.prefix, err)
	}

	return &item, nil
}

func (c *JSONCache[T]) Set(ctx context.Context, key string, value *T) error {
	if c == nil || c.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", c.prefix, err)
	}

	return c.client.Set(ctx, c.key(key), data, c.ttl).Err()
}

// Update reads the value under WATCH, passes it to fn (nil when absent) and
// writes fn's result in a MULTI/EXEC block, retrying when another client
// changed the key in between. A nil result from fn leaves the key untouched.
// fn may run more than once.
func (c *JSONCache[T]) Update(ctx context.Context, key string, fn func(current *T) (*T, error)) error {
	if c == nil || c.client == nil {
		_, err := fn(nil)
		return err
	}

	k := c.key(key)
	txf := func(tx *redis.Tx) error {
		current, err := c.decode(tx.Get(ctx, k))
		if err != nil {
			return err
		}
		next, err := fn(current)
		if err != nil || next == nil {
			return err
		}
		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", c.prefix, err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, k, data, c.ttl)
			return nil
		})
		return err
	}

	for range maxUpdateAttempts {
		err := c.client.Watch(ctx, txf, k)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("%s: %w", k, ErrUpdateConflict)
}

func (c *JSONCache[T]) Delete(ctx context.Context, key string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.key(key)).Err()
}

// Touch extends the expiry of an existing key.
func (c *JSONCache[T]) Touch(ctx context.Context, key string) error {
	if c == nil || c.client == nil || c.ttl <= 0 {
		return nil
	}
	return c.client.Expire(ctx, c.key(key), c.ttl).Err()
}
