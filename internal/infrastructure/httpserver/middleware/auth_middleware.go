package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/talentfold/hr-portal/internal/core/domain/employee"
	"github.com/talentfold/hr-portal/internal/core/ports"
	"github.com/talentfold/hr-portal/internal/infrastructure/httpserver/helpers"
)

type JWTMiddleware struct {
	authService ports.AuthService
	logger      *logrus.Logger
}

func NewJWTMiddleware(authService ports.AuthService, logger *logrus.Logger) *JWTMiddleware {
	return &JWTMiddleware{authService: authService, logger: logger}
}

// RequireJWT creates middleware that validates JWT tokens and sets employee context
func (m *JWTMiddleware) RequireJWT() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := helpers.GetJWTTokenFromContext(c)
			if err != nil {
				return err
			}

			claims, err := m.authService.ValidateToken(c.Request().Context(), tokenString)
			if err != nil {
				if m.logger != nil {
					m.logger.WithFields(logrus.Fields{"ip": c.RealIP(), "path": c.Request().URL.Path, "error": err.Error()}).Warn("JWT validation failed")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			helpers.SetEmployeeID(c, claims.EmployeeID)
			helpers.SetEmployeeRole(c, claims.Role)
			helpers.SetEmployeeEmail(c, claims.Email)
			helpers.SetDepartmentID(c, claims.DepartmentID)

			return next(c)
		}
	}
}

// RequireRole restricts a route to the given roles. Must run after RequireJWT.
func (m *JWTMiddleware) RequireRole(roles ...employee.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, err := helpers.GetEmployeeRoleFromContext(c)
			if err != nil {
				return err
			}
			for _, r := range roles {
				if role == r {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
		}
	}
}
