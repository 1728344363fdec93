package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/talentfold/hr-portal/internal/core/domain/auth"
)

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Login(ctx context.Context, req *auth.LoginRequest, ipAddress, userAgent string) (*auth.AuthTokens, error)
	RefreshToken(ctx context.Context, refreshToken string) (*auth.AuthTokens, error)
	Logout(ctx context.Context, accessToken string) error
	ValidateToken(ctx context.Context, token string) (*auth.Claims, error)
}

// RefreshToken represents a stored refresh token
type RefreshToken struct {
	EmployeeID uuid.UUID `json:"employee_id"`
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// TokenRepository defines the interface for session token storage
type TokenRepository interface {
	StoreRefreshToken(ctx context.Context, employeeID uuid.UUID, token string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, token string) (*RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, token string) error
	BlacklistToken(ctx context.Context, token string, expiresAt time.Time) error
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
}
