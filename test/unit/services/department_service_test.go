package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	impl "github.com/talentfold/hr-portal/internal/application/services"
	"github.com/talentfold/hr-portal/internal/core/domain/department"
	"github.com/talentfold/hr-portal/test/mocks"
)

func TestCreateDepartment_DuplicateCode(t *testing.T) {
	repo := &mocks.DepartmentRepositoryMock{
		GetByCodeFn: func(ctx context.Context, code string) (*department.Department, error) {
			return &department.Department{ID: uuid.New(), Code: code}, nil
		},
	}

	svc := impl.NewDepartmentService(repo, &mocks.EmployeeRepositoryMock{}, nil)
	_, err := svc.CreateDepartment(context.Background(), &department.CreateDepartmentRequest{Name: "Engineering", Code: "ENG"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "already taken")
}

func TestDeleteDepartment_RefusedWhileStaffed(t *testing.T) {
	deptID := uuid.New()
	employeeRepo := &mocks.EmployeeRepositoryMock{
		CountFn: func(ctx context.Context, departmentID uuid.UUID) (int, error) {
			require.Equal(t, deptID, departmentID)
			return 7, nil
		},
	}

	svc := impl.NewDepartmentService(&mocks.DepartmentRepositoryMock{}, employeeRepo, nil)
	err := svc.DeleteDepartment(context.Background(), deptID)
	require.Error(t, err)
	require.Contains(t, err.Error(), "still has 7 employees")
}

func TestDeleteDepartment_EmptyDepartment(t *testing.T) {
	deleted := false
	repo := &mocks.DepartmentRepositoryMock{
		DeleteFn: func(ctx context.Context, id uuid.UUID) error {
			deleted = true
			return nil
		},
	}

	svc := impl.NewDepartmentService(repo, &mocks.EmployeeRepositoryMock{}, nil)
	require.NoError(t, svc.DeleteDepartment(context.Background(), uuid.New()))
	require.True(t, deleted)
}
