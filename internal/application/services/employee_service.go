package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/talentfold/hr-portal/internal/core/domain/employee"
	"github.com/talentfold/hr-portal/internal/core/ports"
)

type EmployeeService struct {
	repo           ports.EmployeeRepository
	departmentRepo ports.DepartmentRepository
	directory      ports.DirectoryClient
	logger         *logrus.Logger
}

func NewEmployeeService(repo ports.EmployeeRepository, departmentRepo ports.DepartmentRepository, directory ports.DirectoryClient, logger *logrus.Logger) ports.EmployeeService {
	return &EmployeeService{
		repo:           repo,
		departmentRepo: departmentRepo,
		directory:      directory,
		logger:         logger,
	}
}

func (s *EmployeeService) CreateEmployee(ctx context.Context, req *employee.CreateEmployeeRequest) (*employee.Employee, error) {
	if !req.Role.IsValid() {
		return nil, fmt.Errorf("invalid role %q", req.Role)
	}

	// Validate email uniqueness
	if existing, err := s.repo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("email '%s' is already taken", req.Email)
	}

	// Department must exist
	if _, err := s.departmentRepo.GetByID(ctx, req.DepartmentID); err != nil {
		return nil, fmt.Errorf("department not found: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	hiredAt := time.Now()
	if req.HiredAt != nil {
		hiredAt = *req.HiredAt
	}

	newEmployee := &employee.Employee{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
		DepartmentID: req.DepartmentID,
		ManagerID:    req.ManagerID,
		IsActive:     true,
		HiredAt:      hiredAt,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, newEmployee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	return newEmployee, nil
}

func (s *EmployeeService) GetEmployee(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *EmployeeService) GetEmployeeByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *EmployeeService) UpdateEmployee(ctx context.Context, id uuid.UUID, req *employee.UpdateEmployeeRequest) (*employee.Employee, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		existing.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		existing.LastName = *req.LastName
	}
	if req.Role != nil {
		if !req.Role.IsValid() {
			return nil, fmt.Errorf("invalid role %q", *req.Role)
		}
		existing.Role = *req.Role
	}
	if req.DepartmentID != nil {
		if _, err := s.departmentRepo.GetByID(ctx, *req.DepartmentID); err != nil {
			return nil, fmt.Errorf("department not found: %w", err)
		}
		existing.DepartmentID = *req.DepartmentID
	}
	if req.ManagerID != nil {
		existing.ManagerID = req.ManagerID
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}
	existing.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	return existing, nil
}

func (s *EmployeeService) DeactivateEmployee(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !existing.IsActive {
		return nil
	}

	existing.IsActive = false
	existing.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, existing); err != nil {
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}
	return nil
}

func (s *EmployeeService) ListEmployees(ctx context.Context, departmentID uuid.UUID, limit, offset int) ([]*employee.Employee, int, error) {
	employees, err := s.repo.List(ctx, departmentID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	count, err := s.repo.Count(ctx, departmentID)
	if err != nil {
		return nil, 0, err
	}

	return employees, count, nil
}

func (s *EmployeeService) VerifyPassword(ctx context.Context, employeeID uuid.UUID, password string) error {
	e, err := s.repo.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}
	return bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(password))
}

func (s *EmployeeService) ChangePassword(ctx context.Context, employeeID uuid.UUID, oldPassword, newPassword string) error {
	if err := s.VerifyPassword(ctx, employeeID, oldPassword); err != nil {
		return fmt.Errorf("invalid old password: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	e, err := s.repo.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}

	e.PasswordHash = string(hashedPassword)
	e.UpdatedAt = time.Now()
	return s.repo.Update(ctx, e)
}

// SyncDirectory reconciles local employees against the upstream HRIS
// directory. New directory records become staff accounts without a password;
// records that disappear upstream are deactivated on the next update pass.
func (s *EmployeeService) SyncDirectory(ctx context.Context) (created, updated int, err error) {
	if s.directory == nil {
		return 0, 0, fmt.Errorf("directory client not configured")
	}

	records, err := s.directory.ListDirectoryEmployees(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to fetch directory: %w", err)
	}

	for _, rec := range records {
		dept, err := s.departmentRepo.GetByCode(ctx, rec.DepartmentCode)
		if err != nil {
			if s.logger != nil {
				s.logger.WithFields(logrus.Fields{"external_id": rec.ExternalID, "department_code": rec.DepartmentCode}).WithError(err).Warn("directory sync: skipping record with unknown department")
			}
			continue
		}

		existing, err := s.repo.GetByExternalID(ctx, rec.ExternalID)
		if err != nil {
			// Not known yet; create a staff record linked to the directory entry.
			hiredAt := time.Now()
			if rec.HiredAt != nil {
				hiredAt = *rec.HiredAt
			}
			externalID := rec.ExternalID
			newEmployee := &employee.Employee{
				ID:           uuid.New(),
				Email:        rec.Email,
				FirstName:    rec.FirstName,
				LastName:     rec.LastName,
				Role:         employee.RoleStaff,
				DepartmentID: dept.ID,
				ExternalID:   &externalID,
				IsActive:     rec.Active,
				HiredAt:      hiredAt,
				CreatedAt:    time.Now(),
				UpdatedAt:    time.Now(),
			}
			if rec.ManagerEmail != nil {
				if mgr, err := s.repo.GetByEmail(ctx, *rec.ManagerEmail); err == nil {
					newEmployee.ManagerID = &mgr.ID
				}
			}
			if err := s.repo.Create(ctx, newEmployee); err != nil {
				if s.logger != nil {
					s.logger.WithFields(logrus.Fields{"external_id": rec.ExternalID, "email": rec.Email}).WithError(err).Warn("directory sync: failed to create employee")
				}
				continue
			}
			created++
			continue
		}

		changed := false
		if existing.FirstName != rec.FirstName {
			existing.FirstName = rec.FirstName
			changed = true
		}
		if existing.LastName != rec.LastName {
			existing.LastName = rec.LastName
			changed = true
		}
		if existing.Email != rec.Email {
			existing.Email = rec.Email
			changed = true
		}
		if existing.DepartmentID != dept.ID {
			existing.DepartmentID = dept.ID
			changed = true
		}
		if existing.IsActive != rec.Active {
			existing.IsActive = rec.Active
			changed = true
		}
		if rec.ManagerEmail != nil {
			if mgr, err := s.repo.GetByEmail(ctx, *rec.ManagerEmail); err == nil {
				if existing.ManagerID == nil || *existing.ManagerID != mgr.ID {
					existing.ManagerID = &mgr.ID
					changed = true
				}
			}
		}
		if !changed {
			continue
		}

		existing.UpdatedAt = time.Now()
		if err := s.repo.Update(ctx, existing); err != nil {
			if s.logger != nil {
				s.logger.WithFields(logrus.Fields{"employee_id": existing.ID}).WithError(err).Warn("directory sync: failed to update employee")
			}
			continue
		}
		updated++
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"records": len(records), "created": created, "updated": updated}).Info("directory sync completed")
	}
	return created, updated, nil
}
