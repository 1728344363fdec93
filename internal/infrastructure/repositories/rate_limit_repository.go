package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/talentfold/hr-portal/internal/core/ports"
)

// RateLimitRedisRepository implements rate limiting counter storage with Redis.
type RateLimitRedisRepository struct {
	r redis.Cmdable
}

func NewRateLimitRedisRepository(r redis.Cmdable) ports.RateLimitRepository {
	return &RateLimitRedisRepository{r: r}
}

// Increment bumps the counter for key within the current fixed window and
// returns the new count.
func (repo *RateLimitRedisRepository) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	windowStart := time.Now().Truncate(window)
	redisKey := fmt.Sprintf("hr_ratelimit:%s:%d", key, windowStart.Unix())

	pipe := repo.r.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
