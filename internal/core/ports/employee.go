package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/talentfold/hr-portal/internal/core/domain/employee"
)

// EmployeeRepository defines the interface for employee data operations
type EmployeeRepository interface {
	Create(ctx context.Context, e *employee.Employee) error
	GetByID(ctx context.Context, id uuid.UUID) (*employee.Employee, error)
	GetByEmail(ctx context.Context, email string) (*employee.Employee, error)
	GetByExternalID(ctx context.Context, externalID string) (*employee.Employee, error)
	Update(ctx context.Context, e *employee.Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, departmentID uuid.UUID, limit, offset int) ([]*employee.Employee, error)
	Count(ctx context.Context, departmentID uuid.UUID) (int, error)
}

// EmployeeService defines the interface for employee business logic
type EmployeeService interface {
	CreateEmployee(ctx context.Context, req *employee.CreateEmployeeRequest) (*employee.Employee, error)
	GetEmployee(ctx context.Context, id uuid.UUID) (*employee.Employee, error)
	GetEmployeeByEmail(ctx context.Context, email string) (*employee.Employee, error)
	UpdateEmployee(ctx context.Context, id uuid.UUID, req *employee.UpdateEmployeeRequest) (*employee.Employee, error)
	DeactivateEmployee(ctx context.Context, id uuid.UUID) error
	ListEmployees(ctx context.Context, departmentID uuid.UUID, limit, offset int) ([]*employee.Employee, int, error)
	VerifyPassword(ctx context.Context, employeeID uuid.UUID, password string) error
	ChangePassword(ctx context.Context, employeeID uuid.UUID, oldPassword, newPassword string) error

	// SyncDirectory reconciles local employees against the upstream HRIS
	// directory, creating and deactivating records as needed. Returns the
	// number of records created and updated.
	SyncDirectory(ctx context.Context) (created, updated int, err error)
}
