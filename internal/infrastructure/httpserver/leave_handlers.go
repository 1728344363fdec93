package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/talentfold/hr-portal/internal/core/domain/leave"
	"github.com/talentfold/hr-portal/internal/infrastructure/httpserver/helpers"
)

// Leave request handlers
func (s *Server) listOwnLeaves(c echo.Context) error {
	employeeID, err := helpers.GetEmployeeIDFromContext(c)
	if err != nil {
		return err
	}

	limit, offset := parsePagination(c)

	requests, err := s.leaveSvc.ListForEmployee(c.Request().Context(), employeeID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list leave requests")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items":  requests,
		"limit":  limit,
		"offset": offset,
	})
}

func (s *Server) createLeaveRequest(c echo.Context) error {
	employeeID, err := helpers.GetEmployeeIDFromContext(c)
	if err != nil {
		return err
	}

	var req leave.CreateLeaveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "start_date and end_date are required")
	}

	r, err := s.leaveSvc.CreateRequest(c.Request().Context(), employeeID, &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, r)
}

func (s *Server) listPendingLeaves(c echo.Context) error {
	limit, offset := parsePagination(c)

	requests, err := s.leaveSvc.ListPending(c.Request().Context(), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list pending leave requests")
	}

	total, err := s.leaveSvc.CountPending(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to count pending leave requests")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items":  requests,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (s *Server) getHolidays(c echo.Context) error {
	year := time.Now().UTC().Year()
	if raw := c.QueryParam("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 2000 || v > 2100 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid year")
		}
		year = v
	}

	holidays, stale, err := s.holidays.Holidays(c.Request().Context(), year)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "holiday calendar unavailable")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"year":     year,
		"holidays": holidays,
		"stale":    stale,
	})
}

func (s *Server) getLeaveRequest(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid leave request ID")
	}

	employeeID, err := helpers.GetEmployeeIDFromContext(c)
	if err != nil {
		return err
	}
	role, err := helpers.GetEmployeeRoleFromContext(c)
	if err != nil {
		return err
	}

	r, err := s.leaveSvc.GetRequest(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "leave request not found")
	}

	if r.EmployeeID != employeeID && !role.CanManage() {
		return echo.NewHTTPError(http.StatusForbidden, "access denied")
	}

	return c.JSON(http.StatusOK, r)
}

func (s *Server) decideLeaveRequest(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid leave request ID")
	}

	reviewerID, err := helpers.GetEmployeeIDFromContext(c)
	if err != nil {
		return err
	}

	var req leave.DecideLeaveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	r, err := s.leaveSvc.Decide(c.Request().Context(), reviewerID, id, &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, r)
}

func (s *Server) cancelLeaveRequest(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid leave request ID")
	}

	employeeID, err := helpers.GetEmployeeIDFromContext(c)
	if err != nil {
		return err
	}

	r, err := s.leaveSvc.Cancel(c.Request().Context(), employeeID, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, r)
}
