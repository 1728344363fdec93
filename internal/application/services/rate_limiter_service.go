package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	config "github.com/talentfold/hr-portal/configs"
	"github.com/talentfold/hr-portal/internal/core/ports"
)

// RateLimiterService implements a fixed-window per-caller rate limit.
type RateLimiterService struct {
	repo   ports.RateLimitRepository
	limit  int64
	window time.Duration
	logger *logrus.Logger
}

func NewRateLimiterService(repo ports.RateLimitRepository, cfg *config.RateLimitConfig, logger *logrus.Logger) ports.RateLimiterService {
	limit := int64(120)
	window := time.Minute
	if cfg != nil {
		if cfg.RequestsPerMinute > 0 {
			limit = int64(cfg.RequestsPerMinute)
		}
		if cfg.Window > 0 {
			window = cfg.Window
		}
	}
	return &RateLimiterService{repo: repo, limit: limit, window: window, logger: logger}
}

func (s *RateLimiterService) Allow(ctx context.Context, key string) (bool, error) {
	count, err := s.repo.Increment(ctx, key, s.window)
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"key": key}).WithError(err).Error("rate limiter: failed to increment window")
		}
		// fail open
		return true, err
	}
	return count <= s.limit, nil
}
