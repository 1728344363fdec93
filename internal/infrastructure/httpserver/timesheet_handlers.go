package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/talentfold/hr-portal/internal/core/domain/timesheet"
	"github.com/talentfold/hr-portal/internal/infrastructure/httpserver/helpers"
)

// Timesheet handlers
func (s *Server) listOwnTimesheets(c echo.Context) error {
	employeeID, err := helpers.GetEmployeeIDFromContext(c)
	if err != nil {
		return err
	}

	limit, offset := parsePagination(c)

	timesheets, err := s.timesheetSvc.ListForEmployee(c.Request().Context(), employeeID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list timesheets")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items":  timesheets,
		"limit":  limit,
		"offset": offset,
	})
}

func (s *Server) upsertTimesheet(c echo.Context) error {
	employeeID, err := helpers.GetEmployeeIDFromContext(c)
	if err != nil {
		return err
	}

	var req timesheet.UpsertTimesheetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.WeekStart.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "week_start is required")
	}

	ts, err := s.timesheetSvc.UpsertDraft(c.Request().Context(), employeeID, &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, ts)
}

func (s *Server) listPendingTimesheets(c echo.Context) error {
	limit, offset := parsePagination(c)

	timesheets, err := s.timesheetSvc.ListPending(c.Request().Context(), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list pending timesheets")
	}

	total, err := s.timesheetSvc.CountPending(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to count pending timesheets")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items":  timesheets,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (s *Server) getTimesheet(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid timesheet ID")
	}

	employeeID, err := helpers.GetEmployeeIDFromContext(c)
	if err != nil {
		return err
	}
	role, err := helpers.GetEmployeeRoleFromContext(c)
	if err != nil {
		return err
	}

	ts, err := s.timesheetSvc.GetTimesheet(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "timesheet not found")
	}

	// Staff can only read their own sheets.
	if ts.EmployeeID != employeeID && !role.CanManage() {
		return echo.NewHTTPError(http.StatusForbidden, "access denied")
	}

	return c.JSON(http.StatusOK, ts)
}

func (s *Server) submitTimesheet(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid timesheet ID")
	}

	employeeID, err := helpers.GetEmployeeIDFromContext(c)
	if err != nil {
		return err
	}

	ts, err := s.timesheetSvc.Submit(c.Request().Context(), employeeID, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, ts)
}

func (s *Server) decideTimesheet(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid timesheet ID")
	}

	reviewerID, err := helpers.GetEmployeeIDFromContext(c)
	if err != nil {
		return err
	}

	var req timesheet.DecideTimesheetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ts, err := s.timesheetSvc.Decide(c.Request().Context(), reviewerID, id, &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, ts)
}
