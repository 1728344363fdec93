package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/talentfold/hr-portal/internal/core/ports"
	"golang.org/x/sync/singleflight"
)

// sf coalesces concurrent cache-miss loads for the same key in-process.
var sf singleflight.Group

// GetOrSet returns the cached value for key when a fresh entry exists and
// forceRefresh is false; otherwise it invokes fetch, stores the result with
// the given TTL and returns it. A fetch failure propagates to the caller and
// caches nothing. Cache backend failures are absorbed: the fetch still runs.
func GetOrSet[T any](ctx context.Context, c ports.KeyValueCache, key string, ttl time.Duration, forceRefresh bool, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if c != nil && !forceRefresh {
		if v, ok := getJSON[T](ctx, c, key); ok {
			return v, nil
		}
	}

	res, err, _ := sf.Do(key, func() (any, error) {
		if c != nil && !forceRefresh {
			if v, ok := getJSON[T](ctx, c, key); ok {
				return v, nil
			}
		}
		v, err := fetch(ctx)
		if err != nil {
			return zero, err
		}
		setJSONSilently(ctx, c, key, v, ttl)
		return v, nil
	})
	if err != nil {
		return zero, err
	}
	v, ok := res.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected type from singleflight result")
	}
	return v, nil
}

// Invalidate removes the entry for key. Safe on a nil cache.
func Invalidate(ctx context.Context, c ports.KeyValueCache, key string) error {
	if c == nil {
		return nil
	}
	return c.Delete(ctx, key)
}

// ClearAll empties the cache. Safe on a nil cache.
func ClearAll(ctx context.Context, c ports.KeyValueCache) error {
	if c == nil {
		return nil
	}
	return c.Clear(ctx)
}

func getJSON[T any](ctx context.Context, c ports.KeyValueCache, key string) (T, bool) {
	var v T
	b, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return v, false
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return v, false
	}
	return v, true
}

func setJSONSilently(ctx context.Context, c ports.KeyValueCache, key string, v any, ttl time.Duration) {
	if c == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.Set(ctx, key, b, ttl)
}
