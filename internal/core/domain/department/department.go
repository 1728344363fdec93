package department

import (
	"time"

	"github.com/google/uuid"
)

type Department struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Code       string    `json:"code" db:"code"`
	CostCenter string    `json:"cost_center" db:"cost_center"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// CreateDepartmentRequest represents the request to create a department
type CreateDepartmentRequest struct {
	Name       string `json:"name" validate:"required"`
	Code       string `json:"code" validate:"required"`
	CostCenter string `json:"cost_center,omitempty"`
}

// UpdateDepartmentRequest represents the request to update a department
type UpdateDepartmentRequest struct {
	Name       *string `json:"name,omitempty"`
	CostCenter *string `json:"cost_center,omitempty"`
}
