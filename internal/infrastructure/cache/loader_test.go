package cache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestLoader(t *testing.T, clock *fakeClock, fetch func(ctx context.Context) (string, error)) *Loader[string] {
	t.Helper()
	return NewLoader(LoaderConfig{
		Key:      "test:resource",
		TTL:      time.Minute,
		StaleTTL: 10 * time.Minute,
		Cache:    NewMemory(WithClock(clock.Now)),
		Clock:    clock.Now,
	}, fetch)
}

func TestLoaderMissFetchesForeground(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()

	var calls int32
	l := newTestLoader(t, clock, func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "v1", nil
	})

	res, err := l.Load(ctx, false)
	require.NoError(t, err)
	require.Equal(t, "v1", res.Data)
	require.False(t, res.Stale)
	require.False(t, res.FromCache)
	require.Equal(t, clock.Now(), res.LastUpdated)
	require.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestLoaderFreshHitSkipsFetch(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()

	var calls int32
	l := newTestLoader(t, clock, func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "v1", nil
	})

	_, err := l.Load(ctx, false)
	require.NoError(t, err)

	clock.Advance(59 * time.Second)
	res, err := l.Load(ctx, false)
	require.NoError(t, err)
	require.Equal(t, "v1", res.Data)
	require.True(t, res.FromCache)
	require.False(t, res.Stale)
	require.EqualValues(t, 1, atomic.LoadInt32(&calls), "fresh entry must not trigger a fetch")
}

func TestLoaderStaleServesImmediatelyAndRefreshes(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()

	var calls int32
	l := newTestLoader(t, clock, func(ctx context.Context) (string, error) {
		n := atomic.AddInt32(&calls, 1)
		return fmt.Sprintf("v%d", n), nil
	})

	_, err := l.Load(ctx, false)
	require.NoError(t, err)

	// Between TTL and StaleTTL: the old value comes back at once, marked
	// stale, while the refresh runs in the background.
	clock.Advance(2 * time.Minute)
	res, err := l.Load(ctx, false)
	require.NoError(t, err)
	require.Equal(t, "v1", res.Data)
	require.True(t, res.Stale)
	require.True(t, res.FromCache)
	require.NoError(t, res.RefreshErr)

	// The background refresh lands and subsequent reads are fresh again.
	require.Eventually(t, func() bool {
		res, err := l.Load(ctx, false)
		return err == nil && res.Data == "v2" && !res.Stale
	}, 2*time.Second, 10*time.Millisecond)
}

func TestLoaderStaleReadsShareOneRefresh(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()

	gate := make(chan struct{})
	var calls int32
	l := newTestLoader(t, clock, func(ctx context.Context) (string, error) {
		if atomic.AddInt32(&calls, 1) > 1 {
			<-gate
		}
		return "v", nil
	})

	_, err := l.Load(ctx, false)
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)
	for i := 0; i < 5; i++ {
		res, err := l.Load(ctx, false)
		require.NoError(t, err)
		require.True(t, res.Stale)
	}
	close(gate)

	require.Eventually(t, func() bool {
		res, err := l.Load(ctx, false)
		return err == nil && !res.Stale
	}, 2*time.Second, 10*time.Millisecond)
	// One initial fetch plus exactly one shared background refresh.
	require.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestLoaderCoalescesConcurrentForegroundCallers(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()

	gate := make(chan struct{})
	var calls int32
	l := newTestLoader(t, clock, func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		<-gate
		return "shared", nil
	})

	const n = 4
	var wg sync.WaitGroup
	results := make([]Result[string], n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = l.Load(ctx, false)
		}(i)
	}

	// Give every caller time to either start the fetch or attach to it.
	time.Sleep(100 * time.Millisecond)
	close(gate)
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, "shared", results[i].Data)
	}
	require.EqualValues(t, 1, atomic.LoadInt32(&calls), "concurrent misses must share one fetch")
}

func TestLoaderStaleRescueOnFailedFetch(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()

	var fail atomic.Bool
	l := newTestLoader(t, clock, func(ctx context.Context) (string, error) {
		if fail.Load() {
			return "", fmt.Errorf("upstream down")
		}
		return "v1", nil
	})

	_, err := l.Load(ctx, false)
	require.NoError(t, err)

	// A forced refresh that fails surfaces the error together with the last
	// known value, marked stale.
	fail.Store(true)
	res, err := l.Refresh(ctx)
	require.Error(t, err)
	require.Equal(t, "v1", res.Data)
	require.True(t, res.Stale)
}

func TestLoaderSurfacesBackgroundRefreshError(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()

	var fail atomic.Bool
	l := newTestLoader(t, clock, func(ctx context.Context) (string, error) {
		if fail.Load() {
			return "", fmt.Errorf("upstream down")
		}
		return "v1", nil
	})

	_, err := l.Load(ctx, false)
	require.NoError(t, err)

	fail.Store(true)
	clock.Advance(2 * time.Minute)

	// The first stale read kicks off the refresh; once it has failed, later
	// stale reads report the failure without losing the data.
	require.Eventually(t, func() bool {
		res, err := l.Load(ctx, false)
		return err == nil && res.Stale && res.Data == "v1" && res.RefreshErr != nil
	}, 2*time.Second, 10*time.Millisecond)
}

func TestLoaderMissAfterStaleHorizon(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()

	var calls int32
	l := newTestLoader(t, clock, func(ctx context.Context) (string, error) {
		n := atomic.AddInt32(&calls, 1)
		return fmt.Sprintf("v%d", n), nil
	})

	_, err := l.Load(ctx, false)
	require.NoError(t, err)

	// Past StaleTTL the entry is dead: a foreground fetch runs.
	clock.Advance(11 * time.Minute)
	res, err := l.Load(ctx, false)
	require.NoError(t, err)
	require.Equal(t, "v2", res.Data)
	require.False(t, res.Stale)
	require.False(t, res.FromCache)
}

func TestLoaderNilCacheAlwaysFetches(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()

	var calls int32
	l := NewLoader(LoaderConfig{
		Key:   "test:nocache",
		TTL:   time.Minute,
		Clock: clock.Now,
	}, func(ctx context.Context) (string, error) {
		n := atomic.AddInt32(&calls, 1)
		return fmt.Sprintf("v%d", n), nil
	})

	for i := 1; i <= 3; i++ {
		res, err := l.Load(ctx, false)
		require.NoError(t, err)
		require.Equal(t, fmt.Sprintf("v%d", i), res.Data)
		require.False(t, res.FromCache)
	}
}
