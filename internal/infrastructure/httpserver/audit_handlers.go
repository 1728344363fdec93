package httpserver

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/talentfold/hr-portal/internal/core/domain/audit"
)

// Audit log handlers
func (s *Server) getAuditLogs(c echo.Context) error {
	limit, offset := parsePagination(c)

	filter := &audit.AuditLogFilter{
		Limit:  limit,
		Offset: offset,
	}

	if raw := c.QueryParam("actor_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid actor_id")
		}
		filter.ActorID = &id
	}
	if raw := c.QueryParam("resource_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid resource_id")
		}
		filter.ResourceID = &id
	}
	if raw := c.QueryParam("action"); raw != "" {
		action := audit.AuditAction(raw)
		filter.Action = &action
	}
	if raw := c.QueryParam("resource"); raw != "" {
		resource := audit.AuditResource(raw)
		filter.Resource = &resource
	}
	if raw := c.QueryParam("start_time"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid start_time, expected RFC3339")
		}
		filter.StartTime = &t
	}
	if raw := c.QueryParam("end_time"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid end_time, expected RFC3339")
		}
		filter.EndTime = &t
	}

	logs, total, err := s.auditSvc.GetAuditLogs(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch audit logs")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items":  logs,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}
