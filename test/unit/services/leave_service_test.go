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
	"github.com/talentfold/hr-portal/internal/core/domain/leave"
	"github.com/talentfold/hr-portal/test/mocks"
)

func activeEmployeeRepo(e *employee.Employee) *mocks.EmployeeRepositoryMock {
	return &mocks.EmployeeRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
			if id == e.ID {
				return e, nil
			}
			return nil, fmt.Errorf("employee not found")
		},
	}
}

func TestCreateRequest_BusinessDaysSkipWeekendsAndHolidays(t *testing.T) {
	e := &employee.Employee{ID: uuid.New(), Email: "jo@example.com", IsActive: true}
	var created *leave.Request
	repo := &mocks.LeaveRepositoryMock{
		CreateFn: func(ctx context.Context, r *leave.Request) error {
			created = r
			return nil
		},
	}
	holidays := &mocks.HolidayProviderMock{
		HolidaysFn: func(ctx context.Context, year int) ([]leave.Holiday, bool, error) {
			return []leave.Holiday{{Date: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), Name: "Founders Day"}}, false, nil
		},
	}

	svc := impl.NewLeaveService(repo, activeEmployeeRepo(e), holidays, &mocks.EmailSenderMock{}, nil, nil)

	// Mon 2026-03-02 through Sun 2026-03-08: five weekdays minus one holiday.
	r, err := svc.CreateRequest(context.Background(), e.ID, &leave.CreateLeaveRequest{
		Type:      leave.TypeVacation,
		StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	require.Equal(t, 4, r.BusinessDays)
	require.Equal(t, leave.StatusPending, r.Status)
}

func TestCreateRequest_WeekendOnlyIsRejected(t *testing.T) {
	e := &employee.Employee{ID: uuid.New(), IsActive: true}
	svc := impl.NewLeaveService(&mocks.LeaveRepositoryMock{}, activeEmployeeRepo(e), &mocks.HolidayProviderMock{}, &mocks.EmailSenderMock{}, nil, nil)

	_, err := svc.CreateRequest(context.Background(), e.ID, &leave.CreateLeaveRequest{
		Type:      leave.TypeVacation,
		StartDate: time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC), // Saturday
		EndDate:   time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), // Sunday
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "no business days")
}

func TestCreateRequest_StaleHolidayCalendarAccepted(t *testing.T) {
	e := &employee.Employee{ID: uuid.New(), IsActive: true}
	repo := &mocks.LeaveRepositoryMock{}
	holidays := &mocks.HolidayProviderMock{
		HolidaysFn: func(ctx context.Context, year int) ([]leave.Holiday, bool, error) {
			return nil, true, nil
		},
	}

	svc := impl.NewLeaveService(repo, activeEmployeeRepo(e), holidays, &mocks.EmailSenderMock{}, nil, nil)
	r, err := svc.CreateRequest(context.Background(), e.ID, &leave.CreateLeaveRequest{
		Type:      leave.TypeSick,
		StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err, "a stale calendar is still a usable calendar")
	require.Equal(t, 2, r.BusinessDays)
}

func TestCreateRequest_HolidayCalendarOutageRejects(t *testing.T) {
	e := &employee.Employee{ID: uuid.New(), IsActive: true}
	holidays := &mocks.HolidayProviderMock{
		HolidaysFn: func(ctx context.Context, year int) ([]leave.Holiday, bool, error) {
			return nil, false, fmt.Errorf("hris unavailable")
		},
	}

	svc := impl.NewLeaveService(&mocks.LeaveRepositoryMock{}, activeEmployeeRepo(e), holidays, &mocks.EmailSenderMock{}, nil, nil)
	_, err := svc.CreateRequest(context.Background(), e.ID, &leave.CreateLeaveRequest{
		Type:      leave.TypeVacation,
		StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "holiday calendar unavailable")
}

func TestCreateRequest_NotifiesManager(t *testing.T) {
	managerID := uuid.New()
	e := &employee.Employee{ID: uuid.New(), FirstName: "Jo", LastName: "Smith", IsActive: true, ManagerID: &managerID}
	employeeRepo := &mocks.EmployeeRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
			if id == managerID {
				return &employee.Employee{ID: managerID, Email: "boss@example.com"}, nil
			}
			return e, nil
		},
	}
	var notified string
	sender := &mocks.EmailSenderMock{
		SendLeaveSubmittedFn: func(ctx context.Context, managerEmail, employeeName string, businessDays int) error {
			notified = managerEmail
			require.Equal(t, "Jo Smith", employeeName)
			require.Equal(t, 5, businessDays)
			return nil
		},
	}

	svc := impl.NewLeaveService(&mocks.LeaveRepositoryMock{}, employeeRepo, &mocks.HolidayProviderMock{}, sender, nil, nil)
	_, err := svc.CreateRequest(context.Background(), e.ID, &leave.CreateLeaveRequest{
		Type:      leave.TypeVacation,
		StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Equal(t, "boss@example.com", notified)
}

func TestDecide_RequiresManagerAndPendingStatus(t *testing.T) {
	reviewerID := uuid.New()
	employeeRepo := &mocks.EmployeeRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
			return &employee.Employee{ID: id, Role: employee.RoleManager, IsActive: true}, nil
		},
	}
	repo := &mocks.LeaveRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*leave.Request, error) {
			return &leave.Request{ID: id, EmployeeID: uuid.New(), Status: leave.StatusApproved}, nil
		},
	}

	svc := impl.NewLeaveService(repo, employeeRepo, &mocks.HolidayProviderMock{}, &mocks.EmailSenderMock{}, nil, nil)
	_, err := svc.Decide(context.Background(), reviewerID, uuid.New(), &leave.DecideLeaveRequest{Approve: true})
	require.Error(t, err)
	require.Contains(t, err.Error(), "already approved")
}

func TestDecide_CannotReviewOwnRequest(t *testing.T) {
	reviewerID := uuid.New()
	employeeRepo := &mocks.EmployeeRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
			return &employee.Employee{ID: id, Role: employee.RoleAdmin, IsActive: true}, nil
		},
	}
	repo := &mocks.LeaveRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*leave.Request, error) {
			return &leave.Request{ID: id, EmployeeID: reviewerID, Status: leave.StatusPending}, nil
		},
	}

	svc := impl.NewLeaveService(repo, employeeRepo, &mocks.HolidayProviderMock{}, &mocks.EmailSenderMock{}, nil, nil)
	_, err := svc.Decide(context.Background(), reviewerID, uuid.New(), &leave.DecideLeaveRequest{Approve: false})
	require.Error(t, err)
	require.Contains(t, err.Error(), "own leave request")
}

func TestDecide_ApprovalEmailsEmployee(t *testing.T) {
	reviewerID := uuid.New()
	requesterID := uuid.New()
	employeeRepo := &mocks.EmployeeRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
			if id == requesterID {
				return &employee.Employee{ID: requesterID, Email: "jo@example.com"}, nil
			}
			return &employee.Employee{ID: id, Role: employee.RoleManager, IsActive: true}, nil
		},
	}
	repo := &mocks.LeaveRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*leave.Request, error) {
			return &leave.Request{ID: id, EmployeeID: requesterID, Status: leave.StatusPending}, nil
		},
		UpdateFn: func(ctx context.Context, r *leave.Request) error { return nil },
	}
	var decisionSent bool
	sender := &mocks.EmailSenderMock{
		SendLeaveDecisionFn: func(ctx context.Context, email string, approved bool, note string) error {
			decisionSent = true
			require.Equal(t, "jo@example.com", email)
			require.True(t, approved)
			return nil
		},
	}

	svc := impl.NewLeaveService(repo, employeeRepo, &mocks.HolidayProviderMock{}, sender, nil, nil)
	r, err := svc.Decide(context.Background(), reviewerID, uuid.New(), &leave.DecideLeaveRequest{Approve: true})
	require.NoError(t, err)
	require.Equal(t, leave.StatusApproved, r.Status)
	require.Equal(t, &reviewerID, r.ReviewerID)
	require.True(t, decisionSent)
}

func TestCancel_ApprovedAndStartedCannotBeCancelled(t *testing.T) {
	employeeID := uuid.New()
	repo := &mocks.LeaveRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*leave.Request, error) {
			return &leave.Request{
				ID:         id,
				EmployeeID: employeeID,
				Status:     leave.StatusApproved,
				StartDate:  time.Now().AddDate(0, 0, -1),
			}, nil
		},
	}

	svc := impl.NewLeaveService(repo, &mocks.EmployeeRepositoryMock{}, &mocks.HolidayProviderMock{}, &mocks.EmailSenderMock{}, nil, nil)
	_, err := svc.Cancel(context.Background(), employeeID, uuid.New())
	require.Error(t, err)
	require.Contains(t, err.Error(), "already started")
}

func TestCancel_PendingRequest(t *testing.T) {
	employeeID := uuid.New()
	repo := &mocks.LeaveRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*leave.Request, error) {
			return &leave.Request{ID: id, EmployeeID: employeeID, Status: leave.StatusPending}, nil
		},
		UpdateFn: func(ctx context.Context, r *leave.Request) error { return nil },
	}

	svc := impl.NewLeaveService(repo, &mocks.EmployeeRepositoryMock{}, &mocks.HolidayProviderMock{}, &mocks.EmailSenderMock{}, nil, nil)
	r, err := svc.Cancel(context.Background(), employeeID, uuid.New())
	require.NoError(t, err)
	require.Equal(t, leave.StatusCancelled, r.Status)
}

func TestSweepExpired_DelegatesToRepository(t *testing.T) {
	var cutoffSeen time.Time
	repo := &mocks.LeaveRepositoryMock{
		CancelOlderThanFn: func(ctx context.Context, cutoff time.Time) (int, error) {
			cutoffSeen = cutoff
			return 4, nil
		},
	}

	svc := impl.NewLeaveService(repo, &mocks.EmployeeRepositoryMock{}, &mocks.HolidayProviderMock{}, &mocks.EmailSenderMock{}, nil, nil)
	swept, err := svc.SweepExpired(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, swept)
	require.Equal(t, 0, cutoffSeen.Hour())
}
