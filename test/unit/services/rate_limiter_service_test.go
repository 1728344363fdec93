package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	config "github.com/talentfold/hr-portal/configs"
	impl "github.com/talentfold/hr-portal/internal/application/services"
	"github.com/talentfold/hr-portal/test/mocks"
)

func TestAllow_UnderAndOverLimit(t *testing.T) {
	var count int64
	repo := &mocks.RateLimitRepositoryMock{
		IncrementFn: func(ctx context.Context, key string, window time.Duration) (int64, error) {
			count++
			return count, nil
		},
	}

	svc := impl.NewRateLimiterService(repo, &config.RateLimitConfig{RequestsPerMinute: 3, Window: time.Minute}, nil)

	for i := 0; i < 3; i++ {
		ok, err := svc.Allow(context.Background(), "employee:abc")
		require.NoError(t, err)
		require.True(t, ok)
	}

	ok, err := svc.Allow(context.Background(), "employee:abc")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestAllow_FailsOpenOnBackendError(t *testing.T) {
	repo := &mocks.RateLimitRepositoryMock{
		IncrementFn: func(ctx context.Context, key string, window time.Duration) (int64, error) {
			return 0, fmt.Errorf("redis down")
		},
	}

	svc := impl.NewRateLimiterService(repo, nil, nil)
	ok, err := svc.Allow(context.Background(), "ip:1.2.3.4")
	require.True(t, ok, "a broken limiter must not lock users out")
	require.Error(t, err)
}
