package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentfold/hr-portal/internal/core/domain/settings"
	"github.com/talentfold/hr-portal/internal/infrastructure/httpserver/helpers"
)

// Settings handlers
func (s *Server) listSettings(c echo.Context) error {
	limit, offset := parsePagination(c)
	category := c.QueryParam("category")

	items, total, err := s.settingsSvc.ListSettings(c.Request().Context(), category, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list settings")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items":  items,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (s *Server) getSetting(c echo.Context) error {
	key := c.Param("key")
	if key == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "setting key is required")
	}

	setting, err := s.settingsSvc.GetSetting(c.Request().Context(), key)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "setting not found")
	}

	return c.JSON(http.StatusOK, setting)
}

func (s *Server) upsertSetting(c echo.Context) error {
	actorID, err := helpers.GetEmployeeIDFromContext(c)
	if err != nil {
		return err
	}

	key := c.Param("key")
	if key == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "setting key is required")
	}

	var req settings.UpsertSettingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	// The path key wins over whatever the body says.
	req.Key = key
	if len(req.Value) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "value is required")
	}

	setting, err := s.settingsSvc.UpsertSetting(c.Request().Context(), actorID, &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save setting")
	}

	return c.JSON(http.StatusOK, setting)
}

func (s *Server) deleteSetting(c echo.Context) error {
	key := c.Param("key")
	if key == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "setting key is required")
	}

	if err := s.settingsSvc.DeleteSetting(c.Request().Context(), key); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "setting not found")
	}

	return c.NoContent(http.StatusNoContent)
}
