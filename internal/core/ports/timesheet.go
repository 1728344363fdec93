package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/talentfold/hr-portal/internal/core/domain/timesheet"
)

// TimesheetRepository defines the interface for timesheet data operations
type TimesheetRepository interface {
	Create(ctx context.Context, t *timesheet.Timesheet) error
	GetByID(ctx context.Context, id uuid.UUID) (*timesheet.Timesheet, error)
	GetByWeek(ctx context.Context, employeeID uuid.UUID, weekStart time.Time) (*timesheet.Timesheet, error)
	Update(ctx context.Context, t *timesheet.Timesheet) error
	ListByEmployee(ctx context.Context, employeeID uuid.UUID, limit, offset int) ([]*timesheet.Timesheet, error)
	ListByStatus(ctx context.Context, status timesheet.Status, limit, offset int) ([]*timesheet.Timesheet, error)
	CountByStatus(ctx context.Context, status timesheet.Status) (int, error)
	// MissingForWeek returns active employees without a submitted or approved
	// timesheet for the given week. Used by the reminder job.
	MissingForWeek(ctx context.Context, weekStart time.Time) ([]uuid.UUID, error)
}

// TimesheetService defines the interface for timesheet business logic
type TimesheetService interface {
	UpsertDraft(ctx context.Context, employeeID uuid.UUID, req *timesheet.UpsertTimesheetRequest) (*timesheet.Timesheet, error)
	Submit(ctx context.Context, employeeID, timesheetID uuid.UUID) (*timesheet.Timesheet, error)
	Decide(ctx context.Context, reviewerID, timesheetID uuid.UUID, req *timesheet.DecideTimesheetRequest) (*timesheet.Timesheet, error)
	GetTimesheet(ctx context.Context, id uuid.UUID) (*timesheet.Timesheet, error)
	ListForEmployee(ctx context.Context, employeeID uuid.UUID, limit, offset int) ([]*timesheet.Timesheet, error)
	ListPending(ctx context.Context, limit, offset int) ([]*timesheet.Timesheet, error)
	CountPending(ctx context.Context) (int, error)
	// SendWeeklyReminders emails every employee missing last week's timesheet.
	SendWeeklyReminders(ctx context.Context) (int, error)
}
