package redis

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/talentfold/hr-portal/internal/core/ports"
)

// RedisCache implements ports.KeyValueCache using a Redis client. Unlike the
// in-process cache it is shared across portal instances.
type RedisCache struct {
	r redis.UniversalClient
	// optional key prefix to namespace entries
	prefix string
}

// NewRedisCache creates a new Redis-backed cache.
func NewRedisCache(r redis.UniversalClient, prefix string) *RedisCache {
	return &RedisCache{r: r, prefix: prefix}
}

func (c *RedisCache) namespaced(key string) string {
	if c.prefix == "" {
		return key
	}
	return c.prefix + ":" + key
}

// Get implements KeyValueCache.Get.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ns := c.namespaced(key)
	val, err := c.r.Get(ctx, ns).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Set implements KeyValueCache.Set.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	ns := c.namespaced(key)
	return c.r.Set(ctx, ns, value, ttl).Err()
}

// Delete implements KeyValueCache.Delete.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	ns := c.namespaced(key)
	return c.r.Del(ctx, ns).Err()
}

// Clear implements KeyValueCache.Clear. It only removes keys under this
// cache's prefix, walking them with SCAN to avoid blocking the server.
func (c *RedisCache) Clear(ctx context.Context) error {
	pattern := c.namespaced("*")
	iter := c.r.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.r.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

var _ ports.KeyValueCache = (*RedisCache)(nil)
