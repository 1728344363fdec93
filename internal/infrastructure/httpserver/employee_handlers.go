package httpserver

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/talentfold/hr-portal/internal/core/domain/employee"
	"github.com/talentfold/hr-portal/internal/infrastructure/httpserver/helpers"
)

// Employee handlers
func (s *Server) getOwnProfile(c echo.Context) error {
	employeeID, err := helpers.GetEmployeeIDFromContext(c)
	if err != nil {
		return err
	}

	e, err := s.employeeSvc.GetEmployee(c.Request().Context(), employeeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "employee not found")
	}

	return c.JSON(http.StatusOK, e)
}

func (s *Server) listEmployees(c echo.Context) error {
	limit, offset := parsePagination(c)

	departmentID := uuid.Nil
	if raw := c.QueryParam("department_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid department_id")
		}
		departmentID = id
	}

	employees, total, err := s.employeeSvc.ListEmployees(c.Request().Context(), departmentID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list employees")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items":  employees,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (s *Server) createEmployee(c echo.Context) error {
	var req employee.CreateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return echo.NewHTTPError(http.StatusBadRequest, "a valid email is required")
	}
	if len(req.Password) < 8 {
		return echo.NewHTTPError(http.StatusBadRequest, "password must be at least 8 characters")
	}
	if req.FirstName == "" || req.LastName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "first_name and last_name are required")
	}
	if req.DepartmentID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "department_id is required")
	}

	e, err := s.employeeSvc.CreateEmployee(c.Request().Context(), &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, e)
}

func (s *Server) getEmployee(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid employee ID")
	}

	e, err := s.employeeSvc.GetEmployee(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "employee not found")
	}

	return c.JSON(http.StatusOK, e)
}

func (s *Server) updateEmployee(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid employee ID")
	}

	var req employee.UpdateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	e, err := s.employeeSvc.UpdateEmployee(c.Request().Context(), id, &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, e)
}

func (s *Server) deactivateEmployee(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid employee ID")
	}

	if err := s.employeeSvc.DeactivateEmployee(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "employee not found")
	}

	return c.NoContent(http.StatusNoContent)
}

func (s *Server) syncDirectory(c echo.Context) error {
	created, updated, err := s.employeeSvc.SyncDirectory(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "directory sync failed")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"created": created,
		"updated": updated,
	})
}
