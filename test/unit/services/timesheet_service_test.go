package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	impl "github.com/talentfold/hr-portal/internal/application/services"
	"github.com/talentfold/hr-portal/internal/core/domain/employee"
	"github.com/talentfold/hr-portal/internal/core/domain/timesheet"
	"github.com/talentfold/hr-portal/test/mocks"
)

func TestUpsertDraft_NormalizesWeekStartToMonday(t *testing.T) {
	employeeID := uuid.New()
	var created *timesheet.Timesheet
	repo := &mocks.TimesheetRepositoryMock{
		CreateFn: func(ctx context.Context, ts *timesheet.Timesheet) error {
			created = ts
			return nil
		},
	}

	svc := impl.NewTimesheetService(repo, &mocks.EmployeeRepositoryMock{}, &mocks.EmailSenderMock{}, nil, nil)

	// Wednesday 2026-03-04 normalizes to Monday 2026-03-02.
	wednesday := time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC)
	ts, err := svc.UpsertDraft(context.Background(), employeeID, &timesheet.UpsertTimesheetRequest{
		WeekStart: wednesday,
		Entries:   timesheet.Entries{{Day: time.Monday, Hours: 8}},
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	require.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), ts.WeekStart)
	require.Equal(t, timesheet.StatusDraft, ts.Status)
	require.Equal(t, 8.0, ts.TotalHours)
}

func TestUpsertDraft_SubmittedWeekIsLocked(t *testing.T) {
	employeeID := uuid.New()
	repo := &mocks.TimesheetRepositoryMock{
		GetByWeekFn: func(ctx context.Context, eid uuid.UUID, weekStart time.Time) (*timesheet.Timesheet, error) {
			return &timesheet.Timesheet{ID: uuid.New(), EmployeeID: eid, WeekStart: weekStart, Status: timesheet.StatusSubmitted}, nil
		},
	}

	svc := impl.NewTimesheetService(repo, &mocks.EmployeeRepositoryMock{}, &mocks.EmailSenderMock{}, nil, nil)
	_, err := svc.UpsertDraft(context.Background(), employeeID, &timesheet.UpsertTimesheetRequest{
		WeekStart: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Entries:   timesheet.Entries{{Day: time.Monday, Hours: 8}},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "cannot be edited")
}

func TestUpsertDraft_RejectedGoesBackToDraft(t *testing.T) {
	employeeID := uuid.New()
	existing := &timesheet.Timesheet{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		WeekStart:  time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Status:     timesheet.StatusRejected,
	}
	repo := &mocks.TimesheetRepositoryMock{
		GetByWeekFn: func(ctx context.Context, eid uuid.UUID, weekStart time.Time) (*timesheet.Timesheet, error) {
			return existing, nil
		},
		UpdateFn: func(ctx context.Context, ts *timesheet.Timesheet) error { return nil },
	}

	svc := impl.NewTimesheetService(repo, &mocks.EmployeeRepositoryMock{}, &mocks.EmailSenderMock{}, nil, nil)
	ts, err := svc.UpsertDraft(context.Background(), employeeID, &timesheet.UpsertTimesheetRequest{
		WeekStart: existing.WeekStart,
		Entries:   timesheet.Entries{{Day: time.Tuesday, Hours: 6}},
	})
	require.NoError(t, err)
	require.Equal(t, timesheet.StatusDraft, ts.Status)
	require.Equal(t, 6.0, ts.TotalHours)
}

func TestSubmit_RejectsForeignAndEmptyTimesheets(t *testing.T) {
	owner := uuid.New()
	sheetID := uuid.New()
	sheet := &timesheet.Timesheet{ID: sheetID, EmployeeID: owner, Status: timesheet.StatusDraft}
	repo := &mocks.TimesheetRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*timesheet.Timesheet, error) { return sheet, nil },
	}

	svc := impl.NewTimesheetService(repo, &mocks.EmployeeRepositoryMock{}, &mocks.EmailSenderMock{}, nil, nil)

	_, err := svc.Submit(context.Background(), uuid.New(), sheetID)
	require.Error(t, err)
	require.Contains(t, err.Error(), "another employee")

	_, err = svc.Submit(context.Background(), owner, sheetID)
	require.Error(t, err)
	require.Contains(t, err.Error(), "empty")
}

func TestSubmit_TransitionsDraftToSubmitted(t *testing.T) {
	owner := uuid.New()
	sheet := &timesheet.Timesheet{
		ID:         uuid.New(),
		EmployeeID: owner,
		Status:     timesheet.StatusDraft,
		Entries:    timesheet.Entries{{Day: time.Monday, Hours: 8}},
	}
	repo := &mocks.TimesheetRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*timesheet.Timesheet, error) { return sheet, nil },
		UpdateFn:  func(ctx context.Context, ts *timesheet.Timesheet) error { return nil },
	}

	svc := impl.NewTimesheetService(repo, &mocks.EmployeeRepositoryMock{}, &mocks.EmailSenderMock{}, nil, nil)
	ts, err := svc.Submit(context.Background(), owner, sheet.ID)
	require.NoError(t, err)
	require.Equal(t, timesheet.StatusSubmitted, ts.Status)
	require.NotNil(t, ts.SubmittedAt)
}

func TestDecide_StaffMayNotReview(t *testing.T) {
	reviewerID := uuid.New()
	employeeRepo := &mocks.EmployeeRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
			return &employee.Employee{ID: id, Role: employee.RoleStaff, IsActive: true}, nil
		},
	}

	svc := impl.NewTimesheetService(&mocks.TimesheetRepositoryMock{}, employeeRepo, &mocks.EmailSenderMock{}, nil, nil)
	_, err := svc.Decide(context.Background(), reviewerID, uuid.New(), &timesheet.DecideTimesheetRequest{Approve: true})
	require.Error(t, err)
	require.Contains(t, err.Error(), "may not review")
}

func TestDecide_CannotReviewOwnTimesheet(t *testing.T) {
	reviewerID := uuid.New()
	employeeRepo := &mocks.EmployeeRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
			return &employee.Employee{ID: id, Role: employee.RoleManager, IsActive: true}, nil
		},
	}
	repo := &mocks.TimesheetRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*timesheet.Timesheet, error) {
			return &timesheet.Timesheet{ID: id, EmployeeID: reviewerID, Status: timesheet.StatusSubmitted}, nil
		},
	}

	svc := impl.NewTimesheetService(repo, employeeRepo, &mocks.EmailSenderMock{}, nil, nil)
	_, err := svc.Decide(context.Background(), reviewerID, uuid.New(), &timesheet.DecideTimesheetRequest{Approve: true})
	require.Error(t, err)
	require.Contains(t, err.Error(), "own timesheet")
}

func TestDecide_ApproveAndRejectSetFields(t *testing.T) {
	reviewerID := uuid.New()
	note := "looks right"
	employeeRepo := &mocks.EmployeeRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
			return &employee.Employee{ID: id, Role: employee.RoleManager, IsActive: true}, nil
		},
	}
	repo := &mocks.TimesheetRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*timesheet.Timesheet, error) {
			return &timesheet.Timesheet{ID: id, EmployeeID: uuid.New(), Status: timesheet.StatusSubmitted}, nil
		},
		UpdateFn: func(ctx context.Context, ts *timesheet.Timesheet) error { return nil },
	}

	svc := impl.NewTimesheetService(repo, employeeRepo, &mocks.EmailSenderMock{}, nil, nil)

	ts, err := svc.Decide(context.Background(), reviewerID, uuid.New(), &timesheet.DecideTimesheetRequest{Approve: true, ReviewNote: &note})
	require.NoError(t, err)
	require.Equal(t, timesheet.StatusApproved, ts.Status)
	require.Equal(t, &reviewerID, ts.DecidedBy)
	require.Equal(t, &note, ts.ReviewNote)

	ts, err = svc.Decide(context.Background(), reviewerID, uuid.New(), &timesheet.DecideTimesheetRequest{Approve: false})
	require.NoError(t, err)
	require.Equal(t, timesheet.StatusRejected, ts.Status)
}

func TestSendWeeklyReminders_CountsOnlyDelivered(t *testing.T) {
	okID, missingID, bounceID := uuid.New(), uuid.New(), uuid.New()
	repo := &mocks.TimesheetRepositoryMock{
		MissingForWeekFn: func(ctx context.Context, weekStart time.Time) ([]uuid.UUID, error) {
			require.Equal(t, time.Monday, weekStart.Weekday())
			return []uuid.UUID{okID, missingID, bounceID}, nil
		},
	}
	employeeRepo := &mocks.EmployeeRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
			if id == missingID {
				return nil, fmt.Errorf("employee not found")
			}
			return &employee.Employee{ID: id, Email: fmt.Sprintf("%s@example.com", id), IsActive: true}, nil
		},
	}
	sender := &mocks.EmailSenderMock{
		SendTimesheetReminderFn: func(ctx context.Context, email string, weekStart string) error {
			if email == fmt.Sprintf("%s@example.com", bounceID) {
				return fmt.Errorf("smtp rejected")
			}
			return nil
		},
	}

	svc := impl.NewTimesheetService(repo, employeeRepo, sender, nil, nil)
	sent, err := svc.SendWeeklyReminders(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, sent)
}
