package ports

import (
	"context"
	"time"
)

// KeyValueCache is the explicit capability contract every cache backend must
// satisfy. There is no method probing anywhere in the codebase: a component
// either holds a KeyValueCache or it holds nil, and nil means caching is off.
// Implementations should degrade gracefully (returning an error without
// crashing callers) so that application logic can fall back to the primary
// data path.
type KeyValueCache interface {
	// Get returns the raw bytes for key. ok=false if not found or expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value for key with TTL (0 or negative means no expiration if supported).
	// An existing entry is replaced wholesale, never mutated in place.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes the key; absence is not an error.
	Delete(ctx context.Context, key string) error
	// Clear removes all entries reachable by this cache instance.
	Clear(ctx context.Context) error
}
