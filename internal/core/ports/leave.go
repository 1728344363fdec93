package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/talentfold/hr-portal/internal/core/domain/leave"
)

// LeaveRepository defines the interface for leave request data operations
type LeaveRepository interface {
	Create(ctx context.Context, r *leave.Request) error
	GetByID(ctx context.Context, id uuid.UUID) (*leave.Request, error)
	Update(ctx context.Context, r *leave.Request) error
	ListByEmployee(ctx context.Context, employeeID uuid.UUID, limit, offset int) ([]*leave.Request, error)
	ListByStatus(ctx context.Context, status leave.Status, limit, offset int) ([]*leave.Request, error)
	CountByStatus(ctx context.Context, status leave.Status) (int, error)
	// CancelOlderThan marks pending requests whose end date passed before
	// cutoff as cancelled. Returns the number of rows affected.
	CancelOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// LeaveService defines the interface for leave request business logic
type LeaveService interface {
	CreateRequest(ctx context.Context, employeeID uuid.UUID, req *leave.CreateLeaveRequest) (*leave.Request, error)
	Decide(ctx context.Context, reviewerID, requestID uuid.UUID, req *leave.DecideLeaveRequest) (*leave.Request, error)
	Cancel(ctx context.Context, employeeID, requestID uuid.UUID) (*leave.Request, error)
	GetRequest(ctx context.Context, id uuid.UUID) (*leave.Request, error)
	ListForEmployee(ctx context.Context, employeeID uuid.UUID, limit, offset int) ([]*leave.Request, error)
	ListPending(ctx context.Context, limit, offset int) ([]*leave.Request, error)
	CountPending(ctx context.Context) (int, error)
	// SweepExpired cancels pending requests that ended before today.
	SweepExpired(ctx context.Context) (int, error)
}

// HolidayProvider serves the public holiday calendar. Implementations are
// expected to cache aggressively; lookups sit on the leave request hot path.
type HolidayProvider interface {
	// Holidays returns the holidays for a calendar year. stale=true signals
	// the data came from a cache entry past its freshness horizon.
	Holidays(ctx context.Context, year int) (holidays []leave.Holiday, stale bool, err error)
}
