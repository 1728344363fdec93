package cache

import (
	"context"
	"sync"
	"time"

	"github.com/talentfold/hr-portal/internal/core/ports"
)

// Memory is an in-process TTL key-value cache implementing ports.KeyValueCache.
// Entries are replaced wholesale on Set and lazily evicted on Get: an expired
// entry may physically remain in the map but is never returned.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memEntry
	clock   func() time.Time
}

type memEntry struct {
	value    []byte
	storedAt time.Time
	ttl      time.Duration
}

func (e memEntry) expired(now time.Time) bool {
	return e.ttl > 0 && now.Sub(e.storedAt) > e.ttl
}

// Option configures a Memory cache.
type Option func(*Memory)

// WithClock overrides the time source; used by tests to control expiry.
func WithClock(clock func() time.Time) Option {
	return func(m *Memory) { m.clock = clock }
}

// NewMemory creates an empty in-process cache.
func NewMemory(opts ...Option) *Memory {
	m := &Memory{
		entries: make(map[string]memEntry),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get implements KeyValueCache.Get. Expired entries behave as absent.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if e.expired(m.clock()) {
		delete(m.entries, key)
		return nil, false, nil
	}
	return e.value, true, nil
}

// Set implements KeyValueCache.Set. Any existing entry is overwritten
// unconditionally with a fresh storedAt timestamp.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = memEntry{value: value, storedAt: m.clock(), ttl: ttl}
	return nil
}

// Delete implements KeyValueCache.Delete; removing a missing key is a no-op.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}

// Clear implements KeyValueCache.Clear.
func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[string]memEntry)
	return nil
}

// Len returns the number of physically stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

var _ ports.KeyValueCache = (*Memory)(nil)
