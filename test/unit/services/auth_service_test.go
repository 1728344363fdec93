package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	config "github.com/talentfold/hr-portal/configs"
	impl "github.com/talentfold/hr-portal/internal/application/services"
	"github.com/talentfold/hr-portal/internal/core/domain/auth"
	"github.com/talentfold/hr-portal/internal/core/domain/employee"
	"github.com/talentfold/hr-portal/internal/core/ports"
	"github.com/talentfold/hr-portal/test/mocks"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		Secret:          "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	}
}

func activeEmployee(password string) *employee.Employee {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return &employee.Employee{
		ID:           uuid.New(),
		Email:        "jo@example.com",
		PasswordHash: string(hash),
		FirstName:    "Jo",
		LastName:     "Smith",
		Role:         employee.RoleStaff,
		DepartmentID: uuid.New(),
		IsActive:     true,
	}
}

func TestLogin_InvalidPassword(t *testing.T) {
	e := activeEmployee("correct-horse")
	repo := &mocks.EmployeeRepositoryMock{GetByEmailFn: func(ctx context.Context, email string) (*employee.Employee, error) {
		return e, nil
	}}

	svc := impl.NewAuthService(repo, &mocks.TokenRepositoryMock{}, nil, testJWTConfig(), nil)
	_, err := svc.Login(context.Background(), &auth.LoginRequest{Email: e.Email, Password: "wrong"}, "1.2.3.4", "ua")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid credentials")
}

func TestLogin_DisabledAccount(t *testing.T) {
	e := activeEmployee("pw123456")
	e.IsActive = false
	repo := &mocks.EmployeeRepositoryMock{GetByEmailFn: func(ctx context.Context, email string) (*employee.Employee, error) {
		return e, nil
	}}

	svc := impl.NewAuthService(repo, &mocks.TokenRepositoryMock{}, nil, testJWTConfig(), nil)
	_, err := svc.Login(context.Background(), &auth.LoginRequest{Email: e.Email, Password: "pw123456"}, "", "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "disabled")
}

func TestLogin_SuccessStoresRefreshToken(t *testing.T) {
	e := activeEmployee("pw123456")
	var lastLoginSet bool
	repo := &mocks.EmployeeRepositoryMock{
		GetByEmailFn: func(ctx context.Context, email string) (*employee.Employee, error) { return e, nil },
		UpdateFn: func(ctx context.Context, updated *employee.Employee) error {
			lastLoginSet = updated.LastLoginAt != nil
			return nil
		},
	}

	var storedToken string
	tokenRepo := &mocks.TokenRepositoryMock{
		StoreRefreshTokenFn: func(ctx context.Context, employeeID uuid.UUID, token string, expiresAt time.Time) error {
			require.Equal(t, e.ID, employeeID)
			storedToken = token
			return nil
		},
	}

	svc := impl.NewAuthService(repo, tokenRepo, nil, testJWTConfig(), nil)
	tokens, err := svc.Login(context.Background(), &auth.LoginRequest{Email: e.Email, Password: "pw123456"}, "1.2.3.4", "ua")
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)
	require.Equal(t, tokens.RefreshToken, storedToken)
	require.EqualValues(t, (15 * time.Minute).Seconds(), tokens.ExpiresIn)
	require.True(t, lastLoginSet)
}

func TestRefreshToken_ExpiredIsRejectedAndDeleted(t *testing.T) {
	deleted := false
	tokenRepo := &mocks.TokenRepositoryMock{
		GetRefreshTokenFn: func(ctx context.Context, token string) (*ports.RefreshToken, error) {
			return &ports.RefreshToken{EmployeeID: uuid.New(), Token: token, ExpiresAt: time.Now().Add(-time.Hour)}, nil
		},
		DeleteRefreshTokenFn: func(ctx context.Context, token string) error {
			deleted = true
			return nil
		},
	}

	svc := impl.NewAuthService(&mocks.EmployeeRepositoryMock{}, tokenRepo, nil, testJWTConfig(), nil)
	_, err := svc.RefreshToken(context.Background(), "old-token")
	require.Error(t, err)
	require.Contains(t, err.Error(), "expired")
	require.True(t, deleted)
}

func TestRefreshToken_RotatesSingleUse(t *testing.T) {
	e := activeEmployee("pw123456")
	var deletedToken string
	tokenRepo := &mocks.TokenRepositoryMock{
		GetRefreshTokenFn: func(ctx context.Context, token string) (*ports.RefreshToken, error) {
			return &ports.RefreshToken{EmployeeID: e.ID, Token: token, ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
		DeleteRefreshTokenFn: func(ctx context.Context, token string) error {
			deletedToken = token
			return nil
		},
	}
	repo := &mocks.EmployeeRepositoryMock{GetByIDFn: func(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
		return e, nil
	}}

	svc := impl.NewAuthService(repo, tokenRepo, nil, testJWTConfig(), nil)
	tokens, err := svc.RefreshToken(context.Background(), "used-once")
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	require.Equal(t, "used-once", deletedToken)
}

func TestLogout_BlacklistsAccessToken(t *testing.T) {
	e := activeEmployee("pw123456")
	repo := &mocks.EmployeeRepositoryMock{
		GetByEmailFn: func(ctx context.Context, email string) (*employee.Employee, error) { return e, nil },
	}
	var blacklisted string
	tokenRepo := &mocks.TokenRepositoryMock{
		BlacklistTokenFn: func(ctx context.Context, token string, expiresAt time.Time) error {
			blacklisted = token
			require.True(t, expiresAt.After(time.Now()))
			return nil
		},
	}

	svc := impl.NewAuthService(repo, tokenRepo, nil, testJWTConfig(), nil)
	tokens, err := svc.Login(context.Background(), &auth.LoginRequest{Email: e.Email, Password: "pw123456"}, "", "")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), tokens.AccessToken))
	require.Equal(t, tokens.AccessToken, blacklisted)
}

func TestValidateToken_Blacklisted(t *testing.T) {
	e := activeEmployee("pw123456")
	repo := &mocks.EmployeeRepositoryMock{
		GetByEmailFn: func(ctx context.Context, email string) (*employee.Employee, error) { return e, nil },
	}
	tokenRepo := &mocks.TokenRepositoryMock{
		IsTokenBlacklistedFn: func(ctx context.Context, token string) (bool, error) { return true, nil },
	}

	svc := impl.NewAuthService(repo, tokenRepo, nil, testJWTConfig(), nil)
	tokens, err := svc.Login(context.Background(), &auth.LoginRequest{Email: e.Email, Password: "pw123456"}, "", "")
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), tokens.AccessToken)
	require.Error(t, err)
	require.Contains(t, err.Error(), "blacklisted")
}

func TestValidateToken_ValidClaims(t *testing.T) {
	e := activeEmployee("pw123456")
	repo := &mocks.EmployeeRepositoryMock{
		GetByEmailFn: func(ctx context.Context, email string) (*employee.Employee, error) { return e, nil },
	}

	svc := impl.NewAuthService(repo, &mocks.TokenRepositoryMock{}, nil, testJWTConfig(), nil)
	tokens, err := svc.Login(context.Background(), &auth.LoginRequest{Email: e.Email, Password: "pw123456"}, "", "")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), tokens.AccessToken)
	require.NoError(t, err)
	require.Equal(t, e.ID, claims.EmployeeID)
	require.Equal(t, e.Email, claims.Email)
	require.Equal(t, e.Role, claims.Role)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	e := activeEmployee("pw123456")
	repo := &mocks.EmployeeRepositoryMock{
		GetByEmailFn: func(ctx context.Context, email string) (*employee.Employee, error) { return e, nil },
	}

	issuer := impl.NewAuthService(repo, &mocks.TokenRepositoryMock{}, nil, testJWTConfig(), nil)
	tokens, err := issuer.Login(context.Background(), &auth.LoginRequest{Email: e.Email, Password: "pw123456"}, "", "")
	require.NoError(t, err)

	other := impl.NewAuthService(repo, &mocks.TokenRepositoryMock{}, nil, &config.JWTConfig{Secret: "different", AccessTokenTTL: time.Minute, RefreshTokenTTL: time.Hour}, nil)
	_, err = other.ValidateToken(context.Background(), tokens.AccessToken)
	require.Error(t, err)
}
