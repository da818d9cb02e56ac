// Package cache implements the two-tier read-through cache sitting in
// front of Postgres: a bounded in-process near tier backed by go-zero's
// collection.Cache, and a shared Redis far tier behind it. A miss on both
// tiers falls through to the caller-supplied loader; a negative result is
// memoized with a sentinel value so a hot miss doesn't keep hitting the
// database on every request.
package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zeromicro/go-zero/core/collection"
	"github.com/zeromicro/go-zero/core/logx"
)

// notFoundSentinel is the value written to both tiers when the loader
// reports ErrNotFound, so repeated lookups of a missing key short-circuit
// without retrying the database.
const notFoundSentinel = "__not_found__"

// ErrNotFound is returned by GetOrLoad when the key is absent, whether the
// absence was just discovered or is being served from the negative cache.
var ErrNotFound = errors.New("cache: key not found")

// SerDe converts a cached value to and from its wire representation in the
// far tier. The near tier stores the live Go value directly.
type SerDe[T any] interface {
	Serialize(value T) ([]byte, error)
	Deserialize(data []byte) (T, error)
}

// JSONSerDe is the default SerDe for payloads that round-trip through
// encoding/json without custom handling.
type JSONSerDe[T any] struct{}

func (JSONSerDe[T]) Serialize(value T) ([]byte, error) { return json.Marshal(value) }

func (JSONSerDe[T]) Deserialize(data []byte) (T, error) {
	var value T
	err := json.Unmarshal(data, &value)
	return value, err
}

// Cache is a generic two-tier read-through cache for values of type T.
type Cache[T any] struct {
	near  *collection.Cache
	far   *redis.Client
	serde SerDe[T]
	farTTL time.Duration
}

// New builds a two-tier cache. nearCapacity bounds the number of entries
// kept in-process; nearTTL and farTTL bound how long an entry (including
// the negative sentinel) survives in each tier.
func New[T any](nearCapacity int, nearTTL, farTTL time.Duration, far *redis.Client, serde SerDe[T]) (*Cache[T], error) {
	near, err := collection.NewCache(nearTTL, collection.WithLimit(nearCapacity))
	if err != nil {
		return nil, err
	}
	return &Cache[T]{near: near, far: far, serde: serde, farTTL: farTTL}, nil
}

// GetOrLoad returns the cached value for key, calling load on a full miss.
// load should return ErrNotFound (or wrap it) to indicate the key
// genuinely has no backing record; that outcome is cached just like a hit,
// so a flood of lookups for a nonexistent id costs one database round trip.
func (c *Cache[T]) GetOrLoad(ctx context.Context, key string, load func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if v, ok := c.near.Get(key); ok {
		if s, isSentinel := v.(string); isSentinel && s == notFoundSentinel {
			return zero, ErrNotFound
		}
		return v.(T), nil
	}

	raw, err := c.far.Get(ctx, key).Result()
	switch {
	case err == nil:
		if raw == notFoundSentinel {
			c.near.Set(key, notFoundSentinel)
			return zero, ErrNotFound
		}
		value, decErr := c.serde.Deserialize([]byte(raw))
		if decErr != nil {
			logx.WithContext(ctx).Errorf("cache: decode far-tier value for %s: %v", key, decErr)
			break
		}
		c.near.Set(key, value)
		return value, nil
	case errors.Is(err, redis.Nil):
		// full miss on both tiers; fall through to the loader.
	default:
		// A connection error here can't be silently swallowed: doing so
		// would send every request straight to the loader for as long as
		// the far tier is unreachable.
		return zero, fmt.Errorf("cache: far-tier get %s: %w", key, err)
	}

	value, err := load(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			if cnfErr := c.CacheNotFound(ctx, key); cnfErr != nil {
				logx.WithContext(ctx).Errorf("cache: negative-cache set %s: %v", key, cnfErr)
			}
			return zero, ErrNotFound
		}
		return zero, err
	}

	if setErr := c.Set(ctx, key, value); setErr != nil {
		logx.WithContext(ctx).Errorf("cache: write-through set %s: %v", key, setErr)
	}

	return value, nil
}

// Set writes value through both tiers. If the near tier already holds an
// identical serialization, the write is skipped: the value hasn't changed,
// so there's nothing to refresh.
func (c *Cache[T]) Set(ctx context.Context, key string, value T) error {
	encoded, err := c.serde.Serialize(value)
	if err != nil {
		return fmt.Errorf("cache: encode value for %s: %w", key, err)
	}

	if existing, ok := c.near.Get(key); ok {
		if existingValue, isValue := existing.(T); isValue {
			if existingEncoded, encErr := c.serde.Serialize(existingValue); encErr == nil && bytes.Equal(existingEncoded, encoded) {
				return nil
			}
		}
	}

	c.near.Set(key, value)
	if err := c.far.Set(ctx, key, encoded, c.farTTL).Err(); err != nil {
		return fmt.Errorf("cache: far-tier set %s: %w", key, err)
	}
	return nil
}

// CacheNotFound writes the negative-hit sentinel to both tiers, so repeated
// lookups of a key with no backing record short-circuit before reaching the
// database.
func (c *Cache[T]) CacheNotFound(ctx context.Context, key string) error {
	c.near.Set(key, notFoundSentinel)
	if err := c.far.Set(ctx, key, notFoundSentinel, c.farTTL).Err(); err != nil {
		return fmt.Errorf("cache: negative-cache set %s: %w", key, err)
	}
	return nil
}

// Invalidate drops key from both tiers, used after a write that makes the
// cached value stale and no replacement value is available to write
// through instead.
func (c *Cache[T]) Invalidate(ctx context.Context, key string) error {
	c.near.Del(key)
	if err := c.far.Del(ctx, key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}
