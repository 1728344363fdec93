package helpers

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/talentfold/hr-portal/internal/core/domain/employee"
)

type ctxKey string

const (
	keyEmployeeID    ctxKey = "employee_id"
	keyEmployeeRole  ctxKey = "employee_role"
	keyEmployeeEmail ctxKey = "employee_email"
	keyDepartmentID  ctxKey = "department_id"
)

func SetEmployeeID(c echo.Context, id uuid.UUID) { c.Set(string(keyEmployeeID), id) }
func GetEmployeeIDRaw(c echo.Context) (uuid.UUID, bool) {
	v := c.Get(string(keyEmployeeID))
	id, ok := v.(uuid.UUID)
	return id, ok
}

func SetEmployeeRole(c echo.Context, r employee.Role) { c.Set(string(keyEmployeeRole), r) }
func GetEmployeeRoleRaw(c echo.Context) (employee.Role, bool) {
	v := c.Get(string(keyEmployeeRole))
	r, ok := v.(employee.Role)
	return r, ok
}

func SetEmployeeEmail(c echo.Context, email string) { c.Set(string(keyEmployeeEmail), email) }
func GetEmployeeEmailRaw(c echo.Context) (string, bool) {
	v := c.Get(string(keyEmployeeEmail))
	s, ok := v.(string)
	return s, ok
}

func SetDepartmentID(c echo.Context, id uuid.UUID) { c.Set(string(keyDepartmentID), id) }
func GetDepartmentIDRaw(c echo.Context) (uuid.UUID, bool) {
	v := c.Get(string(keyDepartmentID))
	id, ok := v.(uuid.UUID)
	return id, ok
}
