package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/talentfold/hr-portal/internal/core/domain/leave"
	"github.com/talentfold/hr-portal/internal/core/ports"
	"github.com/talentfold/hr-portal/internal/infrastructure/db"
)

// LeaveRepository implements the leave request repository interface
type LeaveRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewLeaveRepository creates a new leave request repository
func NewLeaveRepository(database *db.Database, logger *logrus.Logger) ports.LeaveRepository {
	return &LeaveRepository{
		db:     database,
		logger: logger,
	}
}

const leaveColumns = `id, employee_id, type, start_date, end_date, business_days, reason,
	   status, reviewer_id, review_note, decided_at, created_at, updated_at`

// Create creates a new leave request
func (r *LeaveRepository) Create(ctx context.Context, req *leave.Request) error {
	query := `
		INSERT INTO leave_requests (id, employee_id, type, start_date, end_date, business_days, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.DB.ExecContext(ctx, query,
		req.ID, req.EmployeeID, req.Type, req.StartDate, req.EndDate,
		req.BusinessDays, req.Reason, req.Status)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"request_id": req.ID, "employee_id": req.EmployeeID}).WithError(err).Error("db: failed to create leave request")
		}
		return fmt.Errorf("failed to create leave request: %w", err)
	}

	return nil
}

// GetByID retrieves a leave request by ID
func (r *LeaveRepository) GetByID(ctx context.Context, id uuid.UUID) (*leave.Request, error) {
	var req leave.Request
	query := `SELECT ` + leaveColumns + ` FROM leave_requests WHERE id = $1`

	err := r.db.DB.GetContext(ctx, &req, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("leave request with ID %s not found", id)
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"request_id": id}).WithError(err).Error("db: failed to get leave request by ID")
		}
		return nil, fmt.Errorf("failed to get leave request by ID: %w", err)
	}

	return &req, nil
}

// Update updates an existing leave request
func (r *LeaveRepository) Update(ctx context.Context, req *leave.Request) error {
	query := `
		UPDATE leave_requests
		SET status = $2, reviewer_id = $3, review_note = $4, decided_at = $5, updated_at = $6
		WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query,
		req.ID, req.Status, req.ReviewerID, req.ReviewNote, req.DecidedAt, req.UpdatedAt)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"request_id": req.ID}).WithError(err).Error("db: failed to update leave request")
		}
		return fmt.Errorf("failed to update leave request: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("leave request with ID %s not found", req.ID)
	}

	return nil
}

// ListByEmployee retrieves an employee's leave requests, newest first
func (r *LeaveRepository) ListByEmployee(ctx context.Context, employeeID uuid.UUID, limit, offset int) ([]*leave.Request, error) {
	var requests []*leave.Request
	query := `SELECT ` + leaveColumns + ` FROM leave_requests WHERE employee_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	err := r.db.DB.SelectContext(ctx, &requests, query, employeeID, limit, offset)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"employee_id": employeeID}).WithError(err).Error("db: failed to list leave requests")
		}
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	return requests, nil
}

// ListByStatus retrieves leave requests in a given status, oldest first
func (r *LeaveRepository) ListByStatus(ctx context.Context, status leave.Status, limit, offset int) ([]*leave.Request, error) {
	var requests []*leave.Request
	query := `SELECT ` + leaveColumns + ` FROM leave_requests WHERE status = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`

	err := r.db.DB.SelectContext(ctx, &requests, query, status, limit, offset)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"status": status}).WithError(err).Error("db: failed to list leave requests by status")
		}
		return nil, fmt.Errorf("failed to list leave requests by status: %w", err)
	}

	return requests, nil
}

// CountByStatus counts leave requests in a given status
func (r *LeaveRepository) CountByStatus(ctx context.Context, status leave.Status) (int, error) {
	var count int
	err := r.db.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM leave_requests WHERE status = $1`, status)
	if err != nil {
		return 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	return count, nil
}

// CancelOlderThan marks pending requests that ended before cutoff as cancelled
func (r *LeaveRepository) CancelOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	query := `
		UPDATE leave_requests
		SET status = $1, updated_at = now()
		WHERE status = $2 AND end_date < $3`

	result, err := r.db.DB.ExecContext(ctx, query, leave.StatusCancelled, leave.StatusPending, cutoff)
	if err != nil {
		if r.logger != nil {
			r.logger.WithError(err).Error("db: failed to sweep expired leave requests")
		}
		return 0, fmt.Errorf("failed to sweep expired leave requests: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rowsAffected), nil
}
