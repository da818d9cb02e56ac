package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*Cache[string], *int) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	c, err := New[string](1000, time.Minute, time.Minute, client, JSONSerDe[string]{})
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}

	loads := 0
	return c, &loads
}

func TestGetOrLoadCallsLoaderOnceThenHitsNear(t *testing.T) {
	c, loads := newTestCache(t)
	ctx := context.Background()

	load := func(ctx context.Context) (string, error) {
		*loads++
		return "value-1", nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrLoad(ctx, "key-1", load)
		if err != nil {
			t.Fatalf("get or load: %v", err)
		}
		if v != "value-1" {
			t.Errorf("value = %q, want value-1", v)
		}
	}

	if *loads != 1 {
		t.Errorf("loader called %d times, want 1", *loads)
	}
}

func TestGetOrLoadCachesNotFound(t *testing.T) {
	c, loads := newTestCache(t)
	ctx := context.Background()

	load := func(ctx context.Context) (string, error) {
		*loads++
		return "", ErrNotFound
	}

	for i := 0; i < 3; i++ {
		_, err := c.GetOrLoad(ctx, "missing-key", load)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("get or load = %v, want ErrNotFound", err)
		}
	}

	if *loads != 1 {
		t.Errorf("loader called %d times, want 1", *loads)
	}
}

func TestSetSkipsWriteWhenSerializationUnchanged(t *testing.T) {
	c, loads := newTestCache(t)
	ctx := context.Background()

	load := func(ctx context.Context) (string, error) {
		*loads++
		return "value-1", nil
	}
	if _, err := c.GetOrLoad(ctx, "key-1", load); err != nil {
		t.Fatalf("get or load: %v", err)
	}

	// Drop the far-tier copy so that a write by Set would be observable.
	if err := c.far.Del(ctx, "key-1").Err(); err != nil {
		t.Fatalf("far-tier del: %v", err)
	}
	if err := c.Set(ctx, "key-1", "value-1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if n, err := c.far.Exists(ctx, "key-1").Result(); err != nil || n != 0 {
		t.Errorf("far-tier exists = %d (err %v), want 0: set with identical value should skip the write", n, err)
	}
	if _, err := c.GetOrLoad(ctx, "key-1", load); err != nil {
		t.Fatalf("get or load: %v", err)
	}
	if *loads != 1 {
		t.Errorf("loader called %d times, want 1 (set with identical value should not force reload)", *loads)
	}
}

func TestSetWritesThroughOnChange(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "key-1", "value-1"); err != nil {
		t.Fatalf("set: %v", err)
	}

	v, err := c.GetOrLoad(ctx, "key-1", func(ctx context.Context) (string, error) {
		t.Fatal("loader should not be called after a write-through set")
		return "", nil
	})
	if err != nil {
		t.Fatalf("get or load: %v", err)
	}
	if v != "value-1" {
		t.Errorf("value = %q, want value-1", v)
	}
}

func TestCacheNotFoundShortCircuitsLoader(t *testing.T) {
	c, loads := newTestCache(t)
	ctx := context.Background()

	if err := c.CacheNotFound(ctx, "missing-key"); err != nil {
		t.Fatalf("cache not found: %v", err)
	}

	load := func(ctx context.Context) (string, error) {
		*loads++
		return "", ErrNotFound
	}
	if _, err := c.GetOrLoad(ctx, "missing-key", load); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get or load = %v, want ErrNotFound", err)
	}
	if *loads != 0 {
		t.Errorf("loader called %d times, want 0", *loads)
	}
}

func TestGetOrLoadPropagatesFarTierConnectionError(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { client.Close() })

	c, err := New[string](1000, time.Minute, time.Minute, client, JSONSerDe[string]{})
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}

	loads := 0
	load := func(ctx context.Context) (string, error) {
		loads++
		return "value-1", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := c.GetOrLoad(ctx, "key-1", load); err == nil {
		t.Fatal("get or load = nil error, want far-tier connection error")
	}
	if loads != 0 {
		t.Errorf("loader called %d times, want 0 (connection error must not fall through)", loads)
	}
}

func TestInvalidateForcesReload(t *testing.T) {
	c, loads := newTestCache(t)
	ctx := context.Background()

	load := func(ctx context.Context) (string, error) {
		*loads++
		return "value-1", nil
	}

	if _, err := c.GetOrLoad(ctx, "key-1", load); err != nil {
		t.Fatalf("get or load: %v", err)
	}
	if err := c.Invalidate(ctx, "key-1"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, err := c.GetOrLoad(ctx, "key-1", load); err != nil {
		t.Fatalf("get or load: %v", err)
	}

	if *loads != 2 {
		t.Errorf("loader called %d times, want 2", *loads)
	}
}
