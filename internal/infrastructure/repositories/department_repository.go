package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/talentfold/hr-portal/internal/core/domain/department"
	"github.com/talentfold/hr-portal/internal/core/ports"
	"github.com/talentfold/hr-portal/internal/infrastructure/db"
)

// DepartmentRepository implements the department repository interface
type DepartmentRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(database *db.Database, logger *logrus.Logger) ports.DepartmentRepository {
	return &DepartmentRepository{
		db:     database,
		logger: logger,
	}
}

// Create creates a new department
func (r *DepartmentRepository) Create(ctx context.Context, d *department.Department) error {
	query := `
		INSERT INTO departments (id, name, code, cost_center)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.DB.ExecContext(ctx, query, d.ID, d.Name, d.Code, d.CostCenter)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"department_id": d.ID, "code": d.Code}).WithError(err).Error("db: failed to create department")
		}
		return fmt.Errorf("failed to create department: %w", err)
	}

	return nil
}

// GetByID retrieves a department by ID
func (r *DepartmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*department.Department, error) {
	var d department.Department
	query := `SELECT id, name, code, cost_center, created_at, updated_at FROM departments WHERE id = $1`

	err := r.db.DB.GetContext(ctx, &d, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("department with ID %s not found", id)
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"department_id": id}).WithError(err).Error("db: failed to get department by ID")
		}
		return nil, fmt.Errorf("failed to get department by ID: %w", err)
	}

	return &d, nil
}

// GetByCode retrieves a department by its short code
func (r *DepartmentRepository) GetByCode(ctx context.Context, code string) (*department.Department, error) {
	var d department.Department
	query := `SELECT id, name, code, cost_center, created_at, updated_at FROM departments WHERE code = $1`

	err := r.db.DB.GetContext(ctx, &d, query, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("department with code %s not found", code)
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"code": code}).WithError(err).Error("db: failed to get department by code")
		}
		return nil, fmt.Errorf("failed to get department by code: %w", err)
	}

	return &d, nil
}

// Update updates an existing department
func (r *DepartmentRepository) Update(ctx context.Context, d *department.Department) error {
	query := `
		UPDATE departments
		SET name = $2, cost_center = $3, updated_at = $4
		WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query, d.ID, d.Name, d.CostCenter, d.UpdatedAt)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"department_id": d.ID}).WithError(err).Error("db: failed to update department")
		}
		return fmt.Errorf("failed to update department: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("department with ID %s not found", d.ID)
	}

	return nil
}

// Delete deletes a department by ID
func (r *DepartmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"department_id": id}).WithError(err).Error("db: failed to delete department")
		}
		return fmt.Errorf("failed to delete department: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("department with ID %s not found", id)
	}

	return nil
}

// List retrieves departments with pagination
func (r *DepartmentRepository) List(ctx context.Context, limit, offset int) ([]*department.Department, error) {
	var departments []*department.Department
	query := `SELECT id, name, code, cost_center, created_at, updated_at FROM departments ORDER BY name LIMIT $1 OFFSET $2`

	err := r.db.DB.SelectContext(ctx, &departments, query, limit, offset)
	if err != nil {
		if r.logger != nil {
			r.logger.WithError(err).Error("db: failed to list departments")
		}
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	return departments, nil
}

// Count returns the total number of departments
func (r *DepartmentRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM departments`)
	if err != nil {
		if r.logger != nil {
			r.logger.WithError(err).Error("db: failed to count departments")
		}
		return 0, fmt.Errorf("failed to count departments: %w", err)
	}

	return count, nil
}
