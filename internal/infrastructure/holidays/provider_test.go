package holidays

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/talentfold/hr-portal/internal/core/domain/leave"
	"github.com/talentfold/hr-portal/internal/infrastructure/cache"
)

type fakeFetcher struct {
	calls int32
	fail  atomic.Bool
}

func (f *fakeFetcher) FetchHolidays(_ context.Context, year int) ([]leave.Holiday, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.fail.Load() {
		return nil, fmt.Errorf("hris unavailable")
	}
	return []leave.Holiday{
		{Date: time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC), Name: "New Year's Day"},
		{Date: time.Date(year, 12, 25, 0, 0, 0, 0, time.UTC), Name: "Christmas Day"},
	}, nil
}

func TestHolidaysFetchesOncePerYear(t *testing.T) {
	ctx := context.Background()
	fetcher := &fakeFetcher{}
	p := NewProvider(fetcher, cache.NewMemory(), time.Minute, 10*time.Minute, nil)

	hs, stale, err := p.Holidays(ctx, 2026)
	require.NoError(t, err)
	require.False(t, stale)
	require.Len(t, hs, 2)

	// Second read for the same year is a cache hit.
	_, _, err = p.Holidays(ctx, 2026)
	require.NoError(t, err)
	require.EqualValues(t, 1, atomic.LoadInt32(&fetcher.calls))

	// A different year gets its own loader and its own fetch.
	_, _, err = p.Holidays(ctx, 2027)
	require.NoError(t, err)
	require.EqualValues(t, 2, atomic.LoadInt32(&fetcher.calls))
}

func TestHolidaysStaleRescueOnUpstreamFailure(t *testing.T) {
	ctx := context.Background()
	fetcher := &fakeFetcher{}
	// TTL zero forces every read past the freshness horizon; the loader falls
	// back to the cached calendar when the fetch fails.
	p := NewProvider(fetcher, cache.NewMemory(), time.Nanosecond, 10*time.Minute, nil)

	_, _, err := p.Holidays(ctx, 2026)
	require.NoError(t, err)

	fetcher.fail.Store(true)
	hs, stale, err := p.Holidays(ctx, 2026)
	require.NoError(t, err, "a cached calendar must keep serving through an outage")
	require.True(t, stale)
	require.Len(t, hs, 2)
}

func TestHolidaysHardFailureWithoutCache(t *testing.T) {
	ctx := context.Background()
	fetcher := &fakeFetcher{}
	fetcher.fail.Store(true)
	p := NewProvider(fetcher, cache.NewMemory(), time.Minute, 10*time.Minute, nil)

	_, _, err := p.Holidays(ctx, 2026)
	require.Error(t, err)
}
