package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/talentfold/hr-portal/internal/core/domain/department"
)

// DepartmentRepository defines the interface for department data operations
type DepartmentRepository interface {
	Create(ctx context.Context, d *department.Department) error
	GetByID(ctx context.Context, id uuid.UUID) (*department.Department, error)
	GetByCode(ctx context.Context, code string) (*department.Department, error)
	Update(ctx context.Context, d *department.Department) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*department.Department, error)
	Count(ctx context.Context) (int, error)
}

// DepartmentService defines the interface for department business logic
type DepartmentService interface {
	CreateDepartment(ctx context.Context, req *department.CreateDepartmentRequest) (*department.Department, error)
	GetDepartment(ctx context.Context, id uuid.UUID) (*department.Department, error)
	UpdateDepartment(ctx context.Context, id uuid.UUID, req *department.UpdateDepartmentRequest) (*department.Department, error)
	DeleteDepartment(ctx context.Context, id uuid.UUID) error
	ListDepartments(ctx context.Context, limit, offset int) ([]*department.Department, int, error)
}
