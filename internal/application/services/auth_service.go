package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	config "github.com/talentfold/hr-portal/configs"
	"github.com/talentfold/hr-portal/internal/core/domain/audit"
	"github.com/talentfold/hr-portal/internal/core/domain/auth"
	"github.com/talentfold/hr-portal/internal/core/domain/employee"
	"github.com/talentfold/hr-portal/internal/core/ports"
)

type AuthService struct {
	employeeRepo ports.EmployeeRepository
	tokenRepo    ports.TokenRepository
	auditService ports.AuditService
	jwtConfig    *config.JWTConfig
	logger       *logrus.Logger
}

func NewAuthService(employeeRepo ports.EmployeeRepository, tokenRepo ports.TokenRepository, auditService ports.AuditService, jwtConfig *config.JWTConfig, logger *logrus.Logger) ports.AuthService {
	return &AuthService{
		employeeRepo: employeeRepo,
		tokenRepo:    tokenRepo,
		auditService: auditService,
		jwtConfig:    jwtConfig,
		logger:       logger,
	}
}

func (s *AuthService) Login(ctx context.Context, req *auth.LoginRequest, ipAddress, userAgent string) (*auth.AuthTokens, error) {
	found, err := s.employeeRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if !found.IsActive {
		return nil, fmt.Errorf("employee account is disabled")
	}

	tokens, err := s.generateTokens(ctx, found)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	found.LastLoginAt = &now
	if err := s.employeeRepo.Update(ctx, found); err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"employee_id": found.ID}).WithError(err).Warn("failed to update employee last login time")
		}
	}

	if s.auditService != nil {
		_ = s.auditService.LogAction(ctx, &audit.CreateAuditLogRequest{
			ActorID:   &found.ID,
			Action:    audit.ActionLogin,
			Resource:  audit.ResourceSession,
			IPAddress: ipAddress,
			UserAgent: userAgent,
		})
	}

	return tokens, nil
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*auth.AuthTokens, error) {
	stored, err := s.tokenRepo.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token")
	}

	if time.Now().After(stored.ExpiresAt) {
		if err := s.tokenRepo.DeleteRefreshToken(ctx, refreshToken); err != nil {
			if s.logger != nil {
				s.logger.WithError(err).Warn("failed to delete expired refresh token")
			}
		}
		return nil, fmt.Errorf("refresh token expired")
	}

	found, err := s.employeeRepo.GetByID(ctx, stored.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("employee not found")
	}
	if !found.IsActive {
		return nil, fmt.Errorf("employee account is disabled")
	}

	tokens, err := s.generateTokens(ctx, found)
	if err != nil {
		return nil, err
	}

	// Rotate: a refresh token is single use.
	if err := s.tokenRepo.DeleteRefreshToken(ctx, refreshToken); err != nil {
		if s.logger != nil {
			s.logger.WithError(err).Warn("failed to delete used refresh token")
		}
	}
	return tokens, nil
}

func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.ValidateToken(ctx, accessToken)
	if err != nil {
		return fmt.Errorf("invalid token")
	}

	expiresAt := time.Now().Add(s.jwtConfig.AccessTokenTTL)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := s.tokenRepo.BlacklistToken(ctx, accessToken, expiresAt); err != nil {
		return err
	}

	if s.auditService != nil {
		_ = s.auditService.LogAction(ctx, &audit.CreateAuditLogRequest{
			ActorID:  &claims.EmployeeID,
			Action:   audit.ActionLogout,
			Resource: audit.ResourceSession,
		})
	}

	return nil
}

func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &auth.Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC (prevent alg confusion)
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	isBlacklisted, err := s.tokenRepo.IsTokenBlacklisted(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	if isBlacklisted {
		return nil, fmt.Errorf("token is blacklisted")
	}

	return claims, nil
}

func (s *AuthService) generateTokens(ctx context.Context, e *employee.Employee) (*auth.AuthTokens, error) {
	now := time.Now()

	claims := &auth.Claims{
		EmployeeID:   e.ID,
		Email:        e.Email,
		Role:         e.Role,
		DepartmentID: e.DepartmentID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   e.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtConfig.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessTokenString, err := accessToken.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   e.ID.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtConfig.RefreshTokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	})
	refreshTokenString, err := refreshToken.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.tokenRepo.StoreRefreshToken(ctx, e.ID, refreshTokenString, now.Add(s.jwtConfig.RefreshTokenTTL)); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &auth.AuthTokens{
		AccessToken:  accessTokenString,
		RefreshToken: refreshTokenString,
		ExpiresIn:    int64(s.jwtConfig.AccessTokenTTL.Seconds()),
	}, nil
}
