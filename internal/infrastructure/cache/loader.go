package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/talentfold/hr-portal/internal/core/ports"
)

// entryEnvelope is how loader values live inside a KeyValueCache. The entry is
// written wholesale with the physical TTL set to the stale horizon; freshness
// within that horizon is derived from StoredAt at read time.
type entryEnvelope struct {
	Value    json.RawMessage `json:"v"`
	StoredAt time.Time       `json:"stored_at"`
}

// LoaderConfig configures a stale-while-revalidate Loader.
type LoaderConfig struct {
	// Key identifies the cache entry this loader owns.
	Key string
	// TTL is the freshness horizon: entries younger than TTL are served
	// without any fetch.
	TTL time.Duration
	// StaleTTL is the secondary horizon (must exceed TTL): entries between
	// TTL and StaleTTL are served immediately while a background refresh
	// runs. Older entries are treated as a miss.
	StaleTTL time.Duration
	// RefreshTimeout bounds a background refresh. Defaults to 30s.
	RefreshTimeout time.Duration
	// Cache is the backing store. nil disables caching entirely: every Load
	// becomes a foreground fetch.
	Cache  ports.KeyValueCache
	Logger *logrus.Logger
	// Clock overrides the time source for tests.
	Clock func() time.Time
}

// Result is the state a Loader surfaces to its caller.
type Result[T any] struct {
	Data T
	// Stale is true when Data came from a cache entry past its freshness
	// horizon, or from a stale rescue after a failed fetch.
	Stale     bool
	FromCache bool
	// LastUpdated is when Data was fetched from the source.
	LastUpdated time.Time
	// RefreshErr carries the most recent background refresh failure, so a
	// caller can distinguish "stale, refresh underway" from "stale because
	// refreshes keep failing". Reset to nil by any successful fetch.
	RefreshErr error
}

// Loader serves one logical resource with stale-while-revalidate semantics:
// fresh entries are returned directly, stale entries are returned immediately
// while exactly one background refresh runs, and misses trigger a foreground
// fetch. Fetch failures fall back to the most recent known value, marked
// stale. At most one foreground fetch and one background refresh are in
// flight at any time; concurrent foreground callers share the in-flight
// call's result.
type Loader[T any] struct {
	cfg   LoaderConfig
	fetch func(ctx context.Context) (T, error)

	mu         sync.Mutex
	foreground *call[T]
	refreshing bool
	refreshErr error
	// last is the most recent surfaced value, kept for stale rescue after the
	// cache itself has given the entry up.
	last *Result[T]
}

// call is a pending foreground fetch that late arrivals attach to.
type call[T any] struct {
	done chan struct{}
	res  Result[T]
	err  error
}

// NewLoader builds a Loader around fetch. The fetch function is expected to
// encapsulate its own retry policy (see backend.Client).
func NewLoader[T any](cfg LoaderConfig, fetch func(ctx context.Context) (T, error)) *Loader[T] {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.RefreshTimeout <= 0 {
		cfg.RefreshTimeout = 30 * time.Second
	}
	if cfg.StaleTTL <= cfg.TTL {
		cfg.StaleTTL = 3 * cfg.TTL
	}
	return &Loader[T]{cfg: cfg, fetch: fetch}
}

// Load returns the resource according to the stale-while-revalidate policy.
// With forceRefresh the cache is bypassed and a foreground fetch always runs.
func (l *Loader[T]) Load(ctx context.Context, forceRefresh bool) (Result[T], error) {
	l.mu.Lock()

	// A foreground fetch is already running: attach to it instead of piling
	// on a duplicate (coalesced callers all receive the same result).
	if c := l.foreground; c != nil && !forceRefresh {
		l.mu.Unlock()
		select {
		case <-c.done:
			return c.res, c.err
		case <-ctx.Done():
			var zero Result[T]
			return zero, ctx.Err()
		}
	}

	if !forceRefresh && l.cfg.Cache != nil {
		if env, ok := l.readEntry(ctx); ok {
			age := l.cfg.Clock().Sub(env.StoredAt)
			switch {
			case age <= l.cfg.TTL:
				if res, ok := decodeEnvelope[T](env, false); ok {
					l.last = &res
					l.mu.Unlock()
					loadsTotal.WithLabelValues(l.cfg.Key, "fresh").Inc()
					return res, nil
				}
			case age <= l.cfg.StaleTTL:
				if res, ok := decodeEnvelope[T](env, true); ok {
					res.RefreshErr = l.refreshErr
					l.last = &res
					if !l.refreshing {
						l.refreshing = true
						go l.backgroundRefresh()
					}
					l.mu.Unlock()
					loadsTotal.WithLabelValues(l.cfg.Key, "stale").Inc()
					return res, nil
				}
			}
			// Past the stale horizon (or undecodable): treat as a miss.
		}
	}

	c := &call[T]{done: make(chan struct{})}
	l.foreground = c
	l.mu.Unlock()

	res, err := l.foregroundFetch(ctx)

	l.mu.Lock()
	if l.foreground == c {
		l.foreground = nil
	}
	l.mu.Unlock()

	c.res, c.err = res, err
	close(c.done)
	return res, err
}

// Refresh is Load with the cache bypassed.
func (l *Loader[T]) Refresh(ctx context.Context) (Result[T], error) {
	return l.Load(ctx, true)
}

// ClearCache drops the cache entry without touching the last surfaced value.
func (l *Loader[T]) ClearCache(ctx context.Context) error {
	if l.cfg.Cache == nil {
		return nil
	}
	return l.cfg.Cache.Delete(ctx, l.cfg.Key)
}

func (l *Loader[T]) foregroundFetch(ctx context.Context) (Result[T], error) {
	v, err := l.fetch(ctx)
	now := l.cfg.Clock()
	if err == nil {
		l.writeEntry(ctx, v, now)
		res := Result[T]{Data: v, LastUpdated: now}
		l.mu.Lock()
		l.last = &res
		l.refreshErr = nil
		l.mu.Unlock()
		loadsTotal.WithLabelValues(l.cfg.Key, "miss").Inc()
		return res, nil
	}

	loadsTotal.WithLabelValues(l.cfg.Key, "error").Inc()
	if l.cfg.Logger != nil {
		l.cfg.Logger.WithField("key", l.cfg.Key).WithError(err).Error("cache loader: foreground fetch failed")
	}
	wrapped := fmt.Errorf("load %s: %w", l.cfg.Key, err)

	// Stale rescue: prefer whatever the cache still holds, then the last
	// value this loader surfaced, even if both are past their horizons.
	if l.cfg.Cache != nil {
		l.mu.Lock()
		env, ok := l.readEntry(ctx)
		l.mu.Unlock()
		if ok {
			if res, ok := decodeEnvelope[T](env, true); ok {
				return res, wrapped
			}
		}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.last != nil {
		res := *l.last
		res.Stale = true
		return res, wrapped
	}
	var zero Result[T]
	return zero, wrapped
}

// backgroundRefresh runs detached from the read that triggered it. A failure
// is recorded in refreshErr and logged, never surfaced to foreground reads as
// an error: the stale value stays in place.
func (l *Loader[T]) backgroundRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), l.cfg.RefreshTimeout)
	defer cancel()
	defer func() {
		l.mu.Lock()
		l.refreshing = false
		l.mu.Unlock()
	}()

	v, err := l.fetch(ctx)
	if err != nil {
		refreshFailures.WithLabelValues(l.cfg.Key).Inc()
		if l.cfg.Logger != nil {
			l.cfg.Logger.WithField("key", l.cfg.Key).WithError(err).Warn("cache loader: background refresh failed, keeping stale entry")
		}
		l.mu.Lock()
		l.refreshErr = err
		l.mu.Unlock()
		return
	}

	now := l.cfg.Clock()
	l.writeEntry(ctx, v, now)
	l.mu.Lock()
	l.last = &Result[T]{Data: v, LastUpdated: now}
	l.refreshErr = nil
	l.mu.Unlock()
}

func (l *Loader[T]) readEntry(ctx context.Context) (entryEnvelope, bool) {
	var env entryEnvelope
	b, ok, err := l.cfg.Cache.Get(ctx, l.cfg.Key)
	if err != nil {
		// Cache backend failure: fail open, treat as a miss.
		if l.cfg.Logger != nil {
			l.cfg.Logger.WithField("key", l.cfg.Key).WithError(err).Warn("cache loader: cache read failed, bypassing cache")
		}
		return env, false
	}
	if !ok {
		return env, false
	}
	if err := json.Unmarshal(b, &env); err != nil {
		return env, false
	}
	return env, true
}

func (l *Loader[T]) writeEntry(ctx context.Context, v T, now time.Time) {
	if l.cfg.Cache == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	b, err := json.Marshal(entryEnvelope{Value: raw, StoredAt: now})
	if err != nil {
		return
	}
	if err := l.cfg.Cache.Set(ctx, l.cfg.Key, b, l.cfg.StaleTTL); err != nil && l.cfg.Logger != nil {
		l.cfg.Logger.WithField("key", l.cfg.Key).WithError(err).Warn("cache loader: cache write failed")
	}
}

func decodeEnvelope[T any](env entryEnvelope, stale bool) (Result[T], bool) {
	var v T
	if err := json.Unmarshal(env.Value, &v); err != nil {
		var zero Result[T]
		return zero, false
	}
	return Result[T]{Data: v, Stale: stale, FromCache: true, LastUpdated: env.StoredAt}, true
}
