package ports

import (
	"context"

	"github.com/talentfold/hr-portal/internal/core/domain/employee"
)

// DirectoryClient reads the upstream HRIS employee directory.
type DirectoryClient interface {
	ListDirectoryEmployees(ctx context.Context) ([]employee.DirectoryRecord, error)
}
