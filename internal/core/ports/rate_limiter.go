package ports

import (
	"context"
	"time"
)

// RateLimitRepository counts requests inside a fixed window.
type RateLimitRepository interface {
	// Increment bumps the counter for key and returns the new count. The key
	// expires after window once created.
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimiterService decides whether a request may proceed.
type RateLimiterService interface {
	// Allow returns false when the caller identified by key exceeded its quota.
	Allow(ctx context.Context, key string) (bool, error)
}
