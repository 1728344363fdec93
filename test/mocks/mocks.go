package mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/talentfold/hr-portal/internal/core/domain/audit"
	"github.com/talentfold/hr-portal/internal/core/domain/auth"
	"github.com/talentfold/hr-portal/internal/core/domain/department"
	"github.com/talentfold/hr-portal/internal/core/domain/employee"
	"github.com/talentfold/hr-portal/internal/core/domain/leave"
	"github.com/talentfold/hr-portal/internal/core/domain/settings"
	"github.com/talentfold/hr-portal/internal/core/domain/timesheet"
	"github.com/talentfold/hr-portal/internal/core/ports"
)

// EmployeeRepositoryMock is a lightweight mock for EmployeeRepository
type EmployeeRepositoryMock struct {
	CreateFn          func(ctx context.Context, e *employee.Employee) error
	GetByIDFn         func(ctx context.Context, id uuid.UUID) (*employee.Employee, error)
	GetByEmailFn      func(ctx context.Context, email string) (*employee.Employee, error)
	GetByExternalIDFn func(ctx context.Context, externalID string) (*employee.Employee, error)
	UpdateFn          func(ctx context.Context, e *employee.Employee) error
	DeleteFn          func(ctx context.Context, id uuid.UUID) error
	ListFn            func(ctx context.Context, departmentID uuid.UUID, limit, offset int) ([]*employee.Employee, error)
	CountFn           func(ctx context.Context, departmentID uuid.UUID) (int, error)
}

func (m *EmployeeRepositoryMock) Create(ctx context.Context, e *employee.Employee) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	return nil
}
func (m *EmployeeRepositoryMock) GetByID(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, fmt.Errorf("employee not found")
}
func (m *EmployeeRepositoryMock) GetByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, fmt.Errorf("employee not found")
}
func (m *EmployeeRepositoryMock) GetByExternalID(ctx context.Context, externalID string) (*employee.Employee, error) {
	if m.GetByExternalIDFn != nil {
		return m.GetByExternalIDFn(ctx, externalID)
	}
	return nil, fmt.Errorf("employee not found")
}
func (m *EmployeeRepositoryMock) Update(ctx context.Context, e *employee.Employee) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, e)
	}
	return nil
}
func (m *EmployeeRepositoryMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}
func (m *EmployeeRepositoryMock) List(ctx context.Context, departmentID uuid.UUID, limit, offset int) ([]*employee.Employee, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, departmentID, limit, offset)
	}
	return nil, nil
}
func (m *EmployeeRepositoryMock) Count(ctx context.Context, departmentID uuid.UUID) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, departmentID)
	}
	return 0, nil
}

// DepartmentRepositoryMock is a lightweight mock for DepartmentRepository
type DepartmentRepositoryMock struct {
	CreateFn    func(ctx context.Context, d *department.Department) error
	GetByIDFn   func(ctx context.Context, id uuid.UUID) (*department.Department, error)
	GetByCodeFn func(ctx context.Context, code string) (*department.Department, error)
	UpdateFn    func(ctx context.Context, d *department.Department) error
	DeleteFn    func(ctx context.Context, id uuid.UUID) error
	ListFn      func(ctx context.Context, limit, offset int) ([]*department.Department, error)
	CountFn     func(ctx context.Context) (int, error)
}

func (m *DepartmentRepositoryMock) Create(ctx context.Context, d *department.Department) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return nil
}
func (m *DepartmentRepositoryMock) GetByID(ctx context.Context, id uuid.UUID) (*department.Department, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, fmt.Errorf("department not found")
}
func (m *DepartmentRepositoryMock) GetByCode(ctx context.Context, code string) (*department.Department, error) {
	if m.GetByCodeFn != nil {
		return m.GetByCodeFn(ctx, code)
	}
	return nil, fmt.Errorf("department not found")
}
func (m *DepartmentRepositoryMock) Update(ctx context.Context, d *department.Department) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, d)
	}
	return nil
}
func (m *DepartmentRepositoryMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}
func (m *DepartmentRepositoryMock) List(ctx context.Context, limit, offset int) ([]*department.Department, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit, offset)
	}
	return nil, nil
}
func (m *DepartmentRepositoryMock) Count(ctx context.Context) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, nil
}

// TimesheetRepositoryMock is a lightweight mock for TimesheetRepository
type TimesheetRepositoryMock struct {
	CreateFn         func(ctx context.Context, t *timesheet.Timesheet) error
	GetByIDFn        func(ctx context.Context, id uuid.UUID) (*timesheet.Timesheet, error)
	GetByWeekFn      func(ctx context.Context, employeeID uuid.UUID, weekStart time.Time) (*timesheet.Timesheet, error)
	UpdateFn         func(ctx context.Context, t *timesheet.Timesheet) error
	ListByEmployeeFn func(ctx context.Context, employeeID uuid.UUID, limit, offset int) ([]*timesheet.Timesheet, error)
	ListByStatusFn   func(ctx context.Context, status timesheet.Status, limit, offset int) ([]*timesheet.Timesheet, error)
	CountByStatusFn  func(ctx context.Context, status timesheet.Status) (int, error)
	MissingForWeekFn func(ctx context.Context, weekStart time.Time) ([]uuid.UUID, error)
}

func (m *TimesheetRepositoryMock) Create(ctx context.Context, t *timesheet.Timesheet) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, t)
	}
	return nil
}
func (m *TimesheetRepositoryMock) GetByID(ctx context.Context, id uuid.UUID) (*timesheet.Timesheet, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, fmt.Errorf("timesheet not found")
}
func (m *TimesheetRepositoryMock) GetByWeek(ctx context.Context, employeeID uuid.UUID, weekStart time.Time) (*timesheet.Timesheet, error) {
	if m.GetByWeekFn != nil {
		return m.GetByWeekFn(ctx, employeeID, weekStart)
	}
	return nil, fmt.Errorf("timesheet not found")
}
func (m *TimesheetRepositoryMock) Update(ctx context.Context, t *timesheet.Timesheet) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, t)
	}
	return nil
}
func (m *TimesheetRepositoryMock) ListByEmployee(ctx context.Context, employeeID uuid.UUID, limit, offset int) ([]*timesheet.Timesheet, error) {
	if m.ListByEmployeeFn != nil {
		return m.ListByEmployeeFn(ctx, employeeID, limit, offset)
	}
	return nil, nil
}
func (m *TimesheetRepositoryMock) ListByStatus(ctx context.Context, status timesheet.Status, limit, offset int) ([]*timesheet.Timesheet, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status, limit, offset)
	}
	return nil, nil
}
func (m *TimesheetRepositoryMock) CountByStatus(ctx context.Context, status timesheet.Status) (int, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx, status)
	}
	return 0, nil
}
func (m *TimesheetRepositoryMock) MissingForWeek(ctx context.Context, weekStart time.Time) ([]uuid.UUID, error) {
	if m.MissingForWeekFn != nil {
		return m.MissingForWeekFn(ctx, weekStart)
	}
	return nil, nil
}

// LeaveRepositoryMock is a lightweight mock for LeaveRepository
type LeaveRepositoryMock struct {
	CreateFn          func(ctx context.Context, r *leave.Request) error
	GetByIDFn         func(ctx context.Context, id uuid.UUID) (*leave.Request, error)
	UpdateFn          func(ctx context.Context, r *leave.Request) error
	ListByEmployeeFn  func(ctx context.Context, employeeID uuid.UUID, limit, offset int) ([]*leave.Request, error)
	ListByStatusFn    func(ctx context.Context, status leave.Status, limit, offset int) ([]*leave.Request, error)
	CountByStatusFn   func(ctx context.Context, status leave.Status) (int, error)
	CancelOlderThanFn func(ctx context.Context, cutoff time.Time) (int, error)
}

func (m *LeaveRepositoryMock) Create(ctx context.Context, r *leave.Request) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}
func (m *LeaveRepositoryMock) GetByID(ctx context.Context, id uuid.UUID) (*leave.Request, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, fmt.Errorf("leave request not found")
}
func (m *LeaveRepositoryMock) Update(ctx context.Context, r *leave.Request) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, r)
	}
	return nil
}
func (m *LeaveRepositoryMock) ListByEmployee(ctx context.Context, employeeID uuid.UUID, limit, offset int) ([]*leave.Request, error) {
	if m.ListByEmployeeFn != nil {
		return m.ListByEmployeeFn(ctx, employeeID, limit, offset)
	}
	return nil, nil
}
func (m *LeaveRepositoryMock) ListByStatus(ctx context.Context, status leave.Status, limit, offset int) ([]*leave.Request, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status, limit, offset)
	}
	return nil, nil
}
func (m *LeaveRepositoryMock) CountByStatus(ctx context.Context, status leave.Status) (int, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx, status)
	}
	return 0, nil
}
func (m *LeaveRepositoryMock) CancelOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	if m.CancelOlderThanFn != nil {
		return m.CancelOlderThanFn(ctx, cutoff)
	}
	return 0, nil
}

// SettingsRepositoryMock is a lightweight mock for SettingsRepository
type SettingsRepositoryMock struct {
	UpsertFn   func(ctx context.Context, s *settings.Setting) error
	GetByKeyFn func(ctx context.Context, key string) (*settings.Setting, error)
	DeleteFn   func(ctx context.Context, key string) error
	ListFn     func(ctx context.Context, category string, limit, offset int) ([]*settings.Setting, error)
	CountFn    func(ctx context.Context, category string) (int, error)
}

func (m *SettingsRepositoryMock) Upsert(ctx context.Context, s *settings.Setting) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, s)
	}
	return nil
}
func (m *SettingsRepositoryMock) GetByKey(ctx context.Context, key string) (*settings.Setting, error) {
	if m.GetByKeyFn != nil {
		return m.GetByKeyFn(ctx, key)
	}
	return nil, fmt.Errorf("setting not found")
}
func (m *SettingsRepositoryMock) Delete(ctx context.Context, key string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, key)
	}
	return nil
}
func (m *SettingsRepositoryMock) List(ctx context.Context, category string, limit, offset int) ([]*settings.Setting, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, category, limit, offset)
	}
	return nil, nil
}
func (m *SettingsRepositoryMock) Count(ctx context.Context, category string) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, category)
	}
	return 0, nil
}

// TokenRepositoryMock is a lightweight mock for TokenRepository
type TokenRepositoryMock struct {
	StoreRefreshTokenFn  func(ctx context.Context, employeeID uuid.UUID, token string, expiresAt time.Time) error
	GetRefreshTokenFn    func(ctx context.Context, token string) (*ports.RefreshToken, error)
	DeleteRefreshTokenFn func(ctx context.Context, token string) error
	BlacklistTokenFn     func(ctx context.Context, token string, expiresAt time.Time) error
	IsTokenBlacklistedFn func(ctx context.Context, token string) (bool, error)
}

func (m *TokenRepositoryMock) StoreRefreshToken(ctx context.Context, employeeID uuid.UUID, token string, expiresAt time.Time) error {
	if m.StoreRefreshTokenFn != nil {
		return m.StoreRefreshTokenFn(ctx, employeeID, token, expiresAt)
	}
	return nil
}
func (m *TokenRepositoryMock) GetRefreshToken(ctx context.Context, token string) (*ports.RefreshToken, error) {
	if m.GetRefreshTokenFn != nil {
		return m.GetRefreshTokenFn(ctx, token)
	}
	return nil, fmt.Errorf("refresh token not found")
}
func (m *TokenRepositoryMock) DeleteRefreshToken(ctx context.Context, token string) error {
	if m.DeleteRefreshTokenFn != nil {
		return m.DeleteRefreshTokenFn(ctx, token)
	}
	return nil
}
func (m *TokenRepositoryMock) BlacklistToken(ctx context.Context, token string, expiresAt time.Time) error {
	if m.BlacklistTokenFn != nil {
		return m.BlacklistTokenFn(ctx, token, expiresAt)
	}
	return nil
}
func (m *TokenRepositoryMock) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	if m.IsTokenBlacklistedFn != nil {
		return m.IsTokenBlacklistedFn(ctx, token)
	}
	return false, nil
}

// AuditServiceMock is a lightweight mock for AuditService
type AuditServiceMock struct {
	LogActionFn    func(ctx context.Context, req *audit.CreateAuditLogRequest) error
	GetAuditLogsFn func(ctx context.Context, filter *audit.AuditLogFilter) ([]*audit.AuditLog, int, error)
}

func (m *AuditServiceMock) LogAction(ctx context.Context, req *audit.CreateAuditLogRequest) error {
	if m.LogActionFn != nil {
		return m.LogActionFn(ctx, req)
	}
	return nil
}
func (m *AuditServiceMock) GetAuditLogs(ctx context.Context, filter *audit.AuditLogFilter) ([]*audit.AuditLog, int, error) {
	if m.GetAuditLogsFn != nil {
		return m.GetAuditLogsFn(ctx, filter)
	}
	return nil, 0, nil
}

// EmailSenderMock is a lightweight mock for EmailSender
type EmailSenderMock struct {
	SendLeaveSubmittedFn    func(ctx context.Context, managerEmail, employeeName string, businessDays int) error
	SendLeaveDecisionFn     func(ctx context.Context, employeeEmail string, approved bool, reviewNote string) error
	SendTimesheetReminderFn func(ctx context.Context, employeeEmail string, weekStart string) error
}

func (m *EmailSenderMock) SendLeaveSubmitted(ctx context.Context, managerEmail, employeeName string, businessDays int) error {
	if m.SendLeaveSubmittedFn != nil {
		return m.SendLeaveSubmittedFn(ctx, managerEmail, employeeName, businessDays)
	}
	return nil
}
func (m *EmailSenderMock) SendLeaveDecision(ctx context.Context, employeeEmail string, approved bool, reviewNote string) error {
	if m.SendLeaveDecisionFn != nil {
		return m.SendLeaveDecisionFn(ctx, employeeEmail, approved, reviewNote)
	}
	return nil
}
func (m *EmailSenderMock) SendTimesheetReminder(ctx context.Context, employeeEmail string, weekStart string) error {
	if m.SendTimesheetReminderFn != nil {
		return m.SendTimesheetReminderFn(ctx, employeeEmail, weekStart)
	}
	return nil
}

// HolidayProviderMock is a lightweight mock for HolidayProvider
type HolidayProviderMock struct {
	HolidaysFn func(ctx context.Context, year int) ([]leave.Holiday, bool, error)
}

func (m *HolidayProviderMock) Holidays(ctx context.Context, year int) ([]leave.Holiday, bool, error) {
	if m.HolidaysFn != nil {
		return m.HolidaysFn(ctx, year)
	}
	return nil, false, nil
}

// RateLimitRepositoryMock is a lightweight mock for RateLimitRepository
type RateLimitRepositoryMock struct {
	IncrementFn func(ctx context.Context, key string, window time.Duration) (int64, error)
}

func (m *RateLimitRepositoryMock) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	if m.IncrementFn != nil {
		return m.IncrementFn(ctx, key, window)
	}
	return 1, nil
}

// DirectoryClientMock is a lightweight mock for DirectoryClient
type DirectoryClientMock struct {
	ListDirectoryEmployeesFn func(ctx context.Context) ([]employee.DirectoryRecord, error)
}

func (m *DirectoryClientMock) ListDirectoryEmployees(ctx context.Context) ([]employee.DirectoryRecord, error) {
	if m.ListDirectoryEmployeesFn != nil {
		return m.ListDirectoryEmployeesFn(ctx)
	}
	return nil, nil
}

// AuthServiceMock is a lightweight mock for AuthService
type AuthServiceMock struct {
	LoginFn         func(ctx context.Context, req *auth.LoginRequest, ipAddress, userAgent string) (*auth.AuthTokens, error)
	RefreshTokenFn  func(ctx context.Context, refreshToken string) (*auth.AuthTokens, error)
	LogoutFn        func(ctx context.Context, accessToken string) error
	ValidateTokenFn func(ctx context.Context, token string) (*auth.Claims, error)
}

func (m *AuthServiceMock) Login(ctx context.Context, req *auth.LoginRequest, ipAddress, userAgent string) (*auth.AuthTokens, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, req, ipAddress, userAgent)
	}
	return nil, fmt.Errorf("invalid credentials")
}
func (m *AuthServiceMock) RefreshToken(ctx context.Context, refreshToken string) (*auth.AuthTokens, error) {
	if m.RefreshTokenFn != nil {
		return m.RefreshTokenFn(ctx, refreshToken)
	}
	return nil, fmt.Errorf("invalid refresh token")
}
func (m *AuthServiceMock) Logout(ctx context.Context, accessToken string) error {
	if m.LogoutFn != nil {
		return m.LogoutFn(ctx, accessToken)
	}
	return nil
}
func (m *AuthServiceMock) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, token)
	}
	return nil, fmt.Errorf("invalid token")
}

// RateLimiterServiceMock is a lightweight mock for RateLimiterService
type RateLimiterServiceMock struct {
	AllowFn func(ctx context.Context, key string) (bool, error)
}

func (m *RateLimiterServiceMock) Allow(ctx context.Context, key string) (bool, error) {
	if m.AllowFn != nil {
		return m.AllowFn(ctx, key)
	}
	return true, nil
}
