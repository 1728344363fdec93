package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/talentfold/hr-portal/internal/core/ports"
)

const (
	tokenPrefix = "hr_tokens"
)

// TokenRedisRepository provides Redis-based storage for refresh tokens and
// the access-token blacklist used on logout.
type TokenRedisRepository struct {
	client redis.Cmdable
	logger *logrus.Logger
}

// NewTokenRedisRepository creates a new Redis token repository
func NewTokenRedisRepository(client redis.Cmdable, logger *logrus.Logger) ports.TokenRepository {
	return &TokenRedisRepository{client: client, logger: logger}
}

// StoreRefreshToken stores a refresh token in Redis with TTL derived from expiresAt
func (r *TokenRedisRepository) StoreRefreshToken(ctx context.Context, employeeID uuid.UUID, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return fmt.Errorf("refresh token already expired")
	}

	rt := ports.RefreshToken{
		EmployeeID: employeeID,
		Token:      token,
		ExpiresAt:  expiresAt,
	}
	data, err := json.Marshal(rt)
	if err != nil {
		return fmt.Errorf("failed to marshal refresh token: %w", err)
	}

	key := fmt.Sprintf("%s:refresh:%s", tokenPrefix, token)
	if err = r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store refresh token in Redis: %w", err)
	}
	return nil
}

// GetRefreshToken retrieves a refresh token from Redis
func (r *TokenRedisRepository) GetRefreshToken(ctx context.Context, token string) (*ports.RefreshToken, error) {
	key := fmt.Sprintf("%s:refresh:%s", tokenPrefix, token)
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("refresh token not found or expired")
		}
		return nil, fmt.Errorf("failed to get refresh token from Redis: %w", err)
	}

	var rt ports.RefreshToken
	if err = json.Unmarshal([]byte(data), &rt); err != nil {
		return nil, fmt.Errorf("failed to unmarshal refresh token: %w", err)
	}
	return &rt, nil
}

// DeleteRefreshToken removes a refresh token from Redis. Deleting a token
// that is already gone is not an error.
func (r *TokenRedisRepository) DeleteRefreshToken(ctx context.Context, token string) error {
	key := fmt.Sprintf("%s:refresh:%s", tokenPrefix, token)
	if err := r.client.Del(ctx, key).Err(); err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"key": key}).WithError(err).Warn("failed to delete refresh token")
		}
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}

// BlacklistToken marks an access token as revoked until it would have expired
func (r *TokenRedisRepository) BlacklistToken(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// Nothing to do, the token can no longer be used.
		return nil
	}

	key := fmt.Sprintf("%s:blacklist:%s", tokenPrefix, token)
	if err := r.client.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

// IsTokenBlacklisted reports whether an access token has been revoked
func (r *TokenRedisRepository) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	key := fmt.Sprintf("%s:blacklist:%s", tokenPrefix, token)
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return exists > 0, nil
}
