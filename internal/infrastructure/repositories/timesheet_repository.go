package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/talentfold/hr-portal/internal/core/domain/timesheet"
	"github.com/talentfold/hr-portal/internal/core/ports"
	"github.com/talentfold/hr-portal/internal/infrastructure/db"
)

// TimesheetRepository implements the timesheet repository interface
type TimesheetRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewTimesheetRepository creates a new timesheet repository
func NewTimesheetRepository(database *db.Database, logger *logrus.Logger) ports.TimesheetRepository {
	return &TimesheetRepository{
		db:     database,
		logger: logger,
	}
}

const timesheetColumns = `id, employee_id, week_start, status, entries, total_hours,
	   submitted_at, decided_at, decided_by, review_note, created_at, updated_at`

// Create creates a new timesheet
func (r *TimesheetRepository) Create(ctx context.Context, t *timesheet.Timesheet) error {
	query := `
		INSERT INTO timesheets (id, employee_id, week_start, status, entries, total_hours)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.DB.ExecContext(ctx, query,
		t.ID, t.EmployeeID, t.WeekStart, t.Status, t.Entries, t.TotalHours)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"timesheet_id": t.ID, "employee_id": t.EmployeeID}).WithError(err).Error("db: failed to create timesheet")
		}
		return fmt.Errorf("failed to create timesheet: %w", err)
	}

	return nil
}

// GetByID retrieves a timesheet by ID
func (r *TimesheetRepository) GetByID(ctx context.Context, id uuid.UUID) (*timesheet.Timesheet, error) {
	var t timesheet.Timesheet
	query := `SELECT ` + timesheetColumns + ` FROM timesheets WHERE id = $1`

	err := r.db.DB.GetContext(ctx, &t, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("timesheet with ID %s not found", id)
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"timesheet_id": id}).WithError(err).Error("db: failed to get timesheet by ID")
		}
		return nil, fmt.Errorf("failed to get timesheet by ID: %w", err)
	}

	return &t, nil
}

// GetByWeek retrieves an employee's timesheet for a specific week
func (r *TimesheetRepository) GetByWeek(ctx context.Context, employeeID uuid.UUID, weekStart time.Time) (*timesheet.Timesheet, error) {
	var t timesheet.Timesheet
	query := `SELECT ` + timesheetColumns + ` FROM timesheets WHERE employee_id = $1 AND week_start = $2`

	err := r.db.DB.GetContext(ctx, &t, query, employeeID, weekStart)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("no timesheet for employee %s in week %s", employeeID, weekStart.Format("2006-01-02"))
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"employee_id": employeeID}).WithError(err).Error("db: failed to get timesheet by week")
		}
		return nil, fmt.Errorf("failed to get timesheet by week: %w", err)
	}

	return &t, nil
}

// Update updates an existing timesheet
func (r *TimesheetRepository) Update(ctx context.Context, t *timesheet.Timesheet) error {
	query := `
		UPDATE timesheets
		SET status = $2, entries = $3, total_hours = $4, submitted_at = $5,
			decided_at = $6, decided_by = $7, review_note = $8, updated_at = $9
		WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query,
		t.ID, t.Status, t.Entries, t.TotalHours, t.SubmittedAt,
		t.DecidedAt, t.DecidedBy, t.ReviewNote, t.UpdatedAt)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"timesheet_id": t.ID}).WithError(err).Error("db: failed to update timesheet")
		}
		return fmt.Errorf("failed to update timesheet: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("timesheet with ID %s not found", t.ID)
	}

	return nil
}

// ListByEmployee retrieves an employee's timesheets, newest week first
func (r *TimesheetRepository) ListByEmployee(ctx context.Context, employeeID uuid.UUID, limit, offset int) ([]*timesheet.Timesheet, error) {
	var sheets []*timesheet.Timesheet
	query := `SELECT ` + timesheetColumns + ` FROM timesheets WHERE employee_id = $1 ORDER BY week_start DESC LIMIT $2 OFFSET $3`

	err := r.db.DB.SelectContext(ctx, &sheets, query, employeeID, limit, offset)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"employee_id": employeeID}).WithError(err).Error("db: failed to list timesheets")
		}
		return nil, fmt.Errorf("failed to list timesheets: %w", err)
	}

	return sheets, nil
}

// ListByStatus retrieves timesheets in a given status, oldest submission first
func (r *TimesheetRepository) ListByStatus(ctx context.Context, status timesheet.Status, limit, offset int) ([]*timesheet.Timesheet, error) {
	var sheets []*timesheet.Timesheet
	query := `SELECT ` + timesheetColumns + ` FROM timesheets WHERE status = $1 ORDER BY submitted_at ASC NULLS LAST LIMIT $2 OFFSET $3`

	err := r.db.DB.SelectContext(ctx, &sheets, query, status, limit, offset)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"status": status}).WithError(err).Error("db: failed to list timesheets by status")
		}
		return nil, fmt.Errorf("failed to list timesheets by status: %w", err)
	}

	return sheets, nil
}

// CountByStatus counts timesheets in a given status
func (r *TimesheetRepository) CountByStatus(ctx context.Context, status timesheet.Status) (int, error) {
	var count int
	err := r.db.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM timesheets WHERE status = $1`, status)
	if err != nil {
		return 0, fmt.Errorf("failed to count timesheets: %w", err)
	}

	return count, nil
}

// MissingForWeek returns active employees without a submitted or approved
// timesheet for the given week
func (r *TimesheetRepository) MissingForWeek(ctx context.Context, weekStart time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := `
		SELECT e.id FROM employees e
		WHERE e.is_active = true
		  AND NOT EXISTS (
			SELECT 1 FROM timesheets t
			WHERE t.employee_id = e.id
			  AND t.week_start = $1
			  AND t.status IN ('submitted', 'approved')
		  )`

	err := r.db.DB.SelectContext(ctx, &ids, query, weekStart)
	if err != nil {
		if r.logger != nil {
			r.logger.WithError(err).Error("db: failed to find employees missing timesheets")
		}
		return nil, fmt.Errorf("failed to find employees missing timesheets: %w", err)
	}

	return ids, nil
}
