package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced time source shared by cache tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemoryGetSetRoundtrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, ok, err := m.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, m.Set(ctx, "k", []byte("v"), time.Minute))
	b, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("v"), b)
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	m := NewMemory(WithClock(clock.Now))

	require.NoError(t, m.Set(ctx, "k", []byte("v"), time.Minute))

	clock.Advance(59 * time.Second)
	_, ok, _ := m.Get(ctx, "k")
	require.True(t, ok)

	clock.Advance(2 * time.Second)
	_, ok, _ = m.Get(ctx, "k")
	require.False(t, ok)
	require.Equal(t, 0, m.Len(), "expired entry should be evicted on read")
}

func TestMemoryZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	m := NewMemory(WithClock(clock.Now))

	require.NoError(t, m.Set(ctx, "k", []byte("v"), 0))
	clock.Advance(1000 * time.Hour)
	_, ok, _ := m.Get(ctx, "k")
	require.True(t, ok)
}

func TestMemorySetReplacesEntry(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	m := NewMemory(WithClock(clock.Now))

	require.NoError(t, m.Set(ctx, "k", []byte("old"), time.Minute))
	clock.Advance(50 * time.Second)
	// Rewriting resets the entry's age.
	require.NoError(t, m.Set(ctx, "k", []byte("new"), time.Minute))
	clock.Advance(50 * time.Second)

	b, ok, _ := m.Get(ctx, "k")
	require.True(t, ok)
	require.Equal(t, []byte("new"), b)
}

func TestMemoryDeleteAndClear(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, m.Set(ctx, "b", []byte("2"), 0))

	require.NoError(t, m.Delete(ctx, "a"))
	require.NoError(t, m.Delete(ctx, "a"), "deleting a missing key is a no-op")
	_, ok, _ := m.Get(ctx, "a")
	require.False(t, ok)

	require.NoError(t, m.Clear(ctx))
	require.Equal(t, 0, m.Len())
}
