package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	FirstName    string     `json:"first_name" db:"first_name"`
	LastName     string     `json:"last_name" db:"last_name"`
	Role         Role       `json:"role" db:"role"`
	DepartmentID uuid.UUID  `json:"department_id" db:"department_id"`
	ManagerID    *uuid.UUID `json:"manager_id,omitempty" db:"manager_id"`
	// ExternalID links the record to the upstream HRIS directory entry.
	ExternalID  *string    `json:"external_id,omitempty" db:"external_id"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	HiredAt     time.Time  `json:"hired_at" db:"hired_at"`
	LastLoginAt *time.Time `json:"last_login_at" db:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	default:
		return false
	}
}

// CanManage reports whether the role may act on records owned by other employees.
func (r Role) CanManage() bool {
	return r == RoleAdmin || r == RoleManager
}

// CreateEmployeeRequest represents the request to create a new employee
type CreateEmployeeRequest struct {
	Email        string     `json:"email" validate:"required,email"`
	Password     string     `json:"password" validate:"required,min=8"`
	FirstName    string     `json:"first_name" validate:"required"`
	LastName     string     `json:"last_name" validate:"required"`
	Role         Role       `json:"role" validate:"required"`
	DepartmentID uuid.UUID  `json:"department_id" validate:"required"`
	ManagerID    *uuid.UUID `json:"manager_id,omitempty"`
	HiredAt      *time.Time `json:"hired_at,omitempty"`
}

// UpdateEmployeeRequest represents the request to update an employee
type UpdateEmployeeRequest struct {
	FirstName    *string    `json:"first_name,omitempty"`
	LastName     *string    `json:"last_name,omitempty"`
	Role         *Role      `json:"role,omitempty"`
	DepartmentID *uuid.UUID `json:"department_id,omitempty"`
	ManagerID    *uuid.UUID `json:"manager_id,omitempty"`
	IsActive     *bool      `json:"is_active,omitempty"`
}

// DirectoryRecord is an employee as reported by the upstream HRIS directory.
type DirectoryRecord struct {
	ExternalID     string     `json:"external_id"`
	Email          string     `json:"email"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	DepartmentCode string     `json:"department_code"`
	ManagerEmail   *string    `json:"manager_email,omitempty"`
	Active         bool       `json:"active"`
	HiredAt        *time.Time `json:"hired_at,omitempty"`
}
