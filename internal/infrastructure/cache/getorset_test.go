package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetOrSetColdFetchesAndStores(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	calls := 0
	v, err := GetOrSet(ctx, m, "k", time.Minute, false, func(ctx context.Context) (string, error) {
		calls++
		return "fetched", nil
	})
	require.NoError(t, err)
	require.Equal(t, "fetched", v)
	require.Equal(t, 1, calls)

	// Warm read comes from the cache.
	v, err = GetOrSet(ctx, m, "k", time.Minute, false, func(ctx context.Context) (string, error) {
		calls++
		return "refetched", nil
	})
	require.NoError(t, err)
	require.Equal(t, "fetched", v)
	require.Equal(t, 1, calls)
}

func TestGetOrSetForceRefresh(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := GetOrSet(ctx, m, "k", time.Minute, false, func(ctx context.Context) (int, error) { return 1, nil })
	require.NoError(t, err)

	v, err := GetOrSet(ctx, m, "k", time.Minute, true, func(ctx context.Context) (int, error) { return 2, nil })
	require.NoError(t, err)
	require.Equal(t, 2, v)

	// The refreshed value replaced the cached one.
	v, err = GetOrSet(ctx, m, "k", time.Minute, false, func(ctx context.Context) (int, error) { return 3, nil })
	require.NoError(t, err)
	require.Equal(t, 2, v)
}

func TestGetOrSetFetchErrorCachesNothing(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := GetOrSet(ctx, m, "k", time.Minute, false, func(ctx context.Context) (string, error) {
		return "", fmt.Errorf("upstream down")
	})
	require.Error(t, err)

	_, ok, _ := m.Get(ctx, "k")
	require.False(t, ok)

	// The next call runs the fetch again and succeeds.
	v, err := GetOrSet(ctx, m, "k", time.Minute, false, func(ctx context.Context) (string, error) {
		return "recovered", nil
	})
	require.NoError(t, err)
	require.Equal(t, "recovered", v)
}

func TestGetOrSetNilCacheAlwaysFetches(t *testing.T) {
	ctx := context.Background()

	calls := 0
	for i := 0; i < 3; i++ {
		v, err := GetOrSet(ctx, nil, "k", time.Minute, false, func(ctx context.Context) (int, error) {
			calls++
			return calls, nil
		})
		require.NoError(t, err)
		require.Equal(t, calls, v)
	}
	require.Equal(t, 3, calls)
}
