package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/talentfold/hr-portal/internal/core/domain/employee"
	"github.com/talentfold/hr-portal/internal/core/ports"
	"github.com/talentfold/hr-portal/internal/infrastructure/db"
)

// EmployeeRepository implements the employee repository interface
type EmployeeRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(database *db.Database, logger *logrus.Logger) ports.EmployeeRepository {
	return &EmployeeRepository{
		db:     database,
		logger: logger,
	}
}

const employeeColumns = `id, email, password_hash, first_name, last_name, role, department_id,
	   manager_id, external_id, is_active, hired_at, last_login_at, created_at, updated_at`

// Create creates a new employee
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	query := `
		INSERT INTO employees (id, email, password_hash, first_name, last_name, role, department_id, manager_id, external_id, is_active, hired_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.DB.ExecContext(ctx, query,
		e.ID, e.Email, e.PasswordHash, e.FirstName, e.LastName, e.Role,
		e.DepartmentID, e.ManagerID, e.ExternalID, e.IsActive, e.HiredAt)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"employee_id": e.ID, "email": e.Email}).WithError(err).Error("db: failed to create employee")
		}
		return fmt.Errorf("failed to create employee: %w", err)
	}
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"employee_id": e.ID, "email": e.Email}).Info("db: employee created")
	}

	return nil
}

// GetByID retrieves an employee by ID
func (r *EmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
	var e employee.Employee
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	err := r.db.DB.GetContext(ctx, &e, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"employee_id": id}).Debug("db: employee not found by ID")
			}
			return nil, fmt.Errorf("employee with ID %s not found", id)
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"employee_id": id}).WithError(err).Error("db: failed to get employee by ID")
		}
		return nil, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	return &e, nil
}

// GetByEmail retrieves an employee by email
func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	var e employee.Employee
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE email = $1`

	err := r.db.DB.GetContext(ctx, &e, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("employee with email %s not found", email)
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"email": email}).WithError(err).Error("db: failed to get employee by email")
		}
		return nil, fmt.Errorf("failed to get employee by email: %w", err)
	}

	return &e, nil
}

// GetByExternalID retrieves an employee by the upstream HRIS identifier
func (r *EmployeeRepository) GetByExternalID(ctx context.Context, externalID string) (*employee.Employee, error) {
	var e employee.Employee
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE external_id = $1`

	err := r.db.DB.GetContext(ctx, &e, query, externalID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("employee with external ID %s not found", externalID)
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"external_id": externalID}).WithError(err).Error("db: failed to get employee by external ID")
		}
		return nil, fmt.Errorf("failed to get employee by external ID: %w", err)
	}

	return &e, nil
}

// Update updates an existing employee
func (r *EmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	query := `
		UPDATE employees
		SET email = $2, password_hash = $3, first_name = $4, last_name = $5,
			role = $6, department_id = $7, manager_id = $8, external_id = $9,
			is_active = $10, last_login_at = $11, updated_at = $12
		WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query,
		e.ID, e.Email, e.PasswordHash, e.FirstName, e.LastName, e.Role,
		e.DepartmentID, e.ManagerID, e.ExternalID, e.IsActive, e.LastLoginAt, e.UpdatedAt)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"employee_id": e.ID}).WithError(err).Error("db: failed to update employee")
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("employee with ID %s not found", e.ID)
	}

	return nil
}

// Delete deletes an employee by ID
func (r *EmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM employees WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query, id)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"employee_id": id}).WithError(err).Error("db: failed to delete employee")
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("employee with ID %s not found", id)
	}

	return nil
}

// List retrieves employees for a department with pagination. A nil department
// ID lists across all departments.
func (r *EmployeeRepository) List(ctx context.Context, departmentID uuid.UUID, limit, offset int) ([]*employee.Employee, error) {
	var employees []*employee.Employee
	var err error
	if departmentID == uuid.Nil {
		query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		err = r.db.DB.SelectContext(ctx, &employees, query, limit, offset)
	} else {
		query := `SELECT ` + employeeColumns + ` FROM employees WHERE department_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		err = r.db.DB.SelectContext(ctx, &employees, query, departmentID, limit, offset)
	}
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"department_id": departmentID}).WithError(err).Error("db: failed to list employees")
		}
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return employees, nil
}

// Count returns the total number of employees for a department (or overall
// when departmentID is nil).
func (r *EmployeeRepository) Count(ctx context.Context, departmentID uuid.UUID) (int, error) {
	var count int
	var err error
	if departmentID == uuid.Nil {
		err = r.db.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM employees`)
	} else {
		err = r.db.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM employees WHERE department_id = $1`, departmentID)
	}
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"department_id": departmentID}).WithError(err).Error("db: failed to count employees")
		}
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}

	return count, nil
}
