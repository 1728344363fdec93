package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/talentfold/hr-portal/internal/core/domain/department"
	"github.com/talentfold/hr-portal/internal/core/ports"
)

type DepartmentService struct {
	repo         ports.DepartmentRepository
	employeeRepo ports.EmployeeRepository
	logger       *logrus.Logger
}

func NewDepartmentService(repo ports.DepartmentRepository, employeeRepo ports.EmployeeRepository, logger *logrus.Logger) ports.DepartmentService {
	return &DepartmentService{
		repo:         repo,
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

func (s *DepartmentService) CreateDepartment(ctx context.Context, req *department.CreateDepartmentRequest) (*department.Department, error) {
	// Validate code uniqueness
	if existing, err := s.repo.GetByCode(ctx, req.Code); err == nil && existing != nil {
		return nil, fmt.Errorf("department code '%s' is already taken", req.Code)
	}

	d := &department.Department{
		ID:         uuid.New(),
		Name:       req.Name,
		Code:       req.Code,
		CostCenter: req.CostCenter,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("failed to create department: %w", err)
	}

	return d, nil
}

func (s *DepartmentService) GetDepartment(ctx context.Context, id uuid.UUID) (*department.Department, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *DepartmentService) UpdateDepartment(ctx context.Context, id uuid.UUID, req *department.UpdateDepartmentRequest) (*department.Department, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.CostCenter != nil {
		existing.CostCenter = *req.CostCenter
	}
	existing.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update department: %w", err)
	}

	return existing, nil
}

func (s *DepartmentService) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	// Refuse to delete a department that still has employees.
	count, err := s.employeeRepo.Count(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count department employees: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("department still has %d employees", count)
	}

	return s.repo.Delete(ctx, id)
}

func (s *DepartmentService) ListDepartments(ctx context.Context, limit, offset int) ([]*department.Department, int, error) {
	departments, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return departments, count, nil
}
