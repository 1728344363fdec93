package httpserver_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/talentfold/hr-portal/internal/core/domain/auth"
	"github.com/talentfold/hr-portal/internal/core/domain/employee"
	custommw "github.com/talentfold/hr-portal/internal/infrastructure/httpserver/middleware"
	"github.com/talentfold/hr-portal/test/mocks"
)

func newRequestContext(t *testing.T, authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestRequireJWT_MissingHeader(t *testing.T) {
	mw := custommw.NewJWTMiddleware(&mocks.AuthServiceMock{}, nil)
	c, _ := newRequestContext(t, "")

	err := mw.RequireJWT()(okHandler)(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestRequireJWT_InvalidToken(t *testing.T) {
	authSvc := &mocks.AuthServiceMock{
		ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
			return nil, fmt.Errorf("token is blacklisted")
		},
	}
	mw := custommw.NewJWTMiddleware(authSvc, nil)
	c, _ := newRequestContext(t, "Bearer some-token")

	err := mw.RequireJWT()(okHandler)(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestRequireJWT_SetsEmployeeContext(t *testing.T) {
	employeeID := uuid.New()
	authSvc := &mocks.AuthServiceMock{
		ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
			require.Equal(t, "valid-token", token)
			return &auth.Claims{EmployeeID: employeeID, Email: "jo@example.com", Role: employee.RoleManager}, nil
		},
	}
	mw := custommw.NewJWTMiddleware(authSvc, nil)
	c, rec := newRequestContext(t, "Bearer valid-token")

	var seenID uuid.UUID
	var seenRole employee.Role
	err := mw.RequireJWT()(func(c echo.Context) error {
		seenID, _ = c.Get("employee_id").(uuid.UUID)
		seenRole, _ = c.Get("employee_role").(employee.Role)
		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, employeeID, seenID)
	require.Equal(t, employee.RoleManager, seenRole)
}

func TestRequireRole_Enforcement(t *testing.T) {
	mw := custommw.NewJWTMiddleware(&mocks.AuthServiceMock{}, nil)

	cases := []struct {
		role    employee.Role
		allowed []employee.Role
		wantOK  bool
	}{
		{employee.RoleAdmin, []employee.Role{employee.RoleAdmin}, true},
		{employee.RoleManager, []employee.Role{employee.RoleAdmin, employee.RoleManager}, true},
		{employee.RoleStaff, []employee.Role{employee.RoleAdmin, employee.RoleManager}, false},
	}
	for _, tc := range cases {
		c, _ := newRequestContext(t, "")
		c.Set("employee_role", tc.role)

		err := mw.RequireRole(tc.allowed...)(okHandler)(c)
		if tc.wantOK {
			require.NoError(t, err, "role %s should pass", tc.role)
			continue
		}
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		require.Equal(t, http.StatusForbidden, httpErr.Code)
	}
}

func TestRateLimit_KeyPerEmployeeThenIP(t *testing.T) {
	var lastKey string
	limiter := &mocks.RateLimiterServiceMock{
		AllowFn: func(ctx context.Context, key string) (bool, error) {
			lastKey = key
			return true, nil
		},
	}
	mw := custommw.NewRateLimitMiddleware(limiter, nil)

	employeeID := uuid.New()
	c, _ := newRequestContext(t, "")
	c.Set("employee_id", employeeID)
	require.NoError(t, mw.Handler()(okHandler)(c))
	require.Equal(t, "employee:"+employeeID.String(), lastKey)

	c, _ = newRequestContext(t, "")
	require.NoError(t, mw.Handler()(okHandler)(c))
	require.Contains(t, lastKey, "ip:")
}

func TestRateLimit_ExceededAndFailOpen(t *testing.T) {
	limiter := &mocks.RateLimiterServiceMock{
		AllowFn: func(ctx context.Context, key string) (bool, error) { return false, nil },
	}
	mw := custommw.NewRateLimitMiddleware(limiter, nil)

	c, _ := newRequestContext(t, "")
	err := mw.Handler()(okHandler)(c)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusTooManyRequests, httpErr.Code)

	// Limiter backend errors must not block traffic.
	limiter.AllowFn = func(ctx context.Context, key string) (bool, error) { return false, fmt.Errorf("redis down") }
	c, rec := newRequestContext(t, "")
	require.NoError(t, mw.Handler()(okHandler)(c))
	require.Equal(t, http.StatusOK, rec.Code)
}
