package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/talentfold/hr-portal/internal/core/domain/employee"
	"github.com/talentfold/hr-portal/internal/core/domain/leave"
)

// ListDirectoryEmployees fetches the full employee directory from the HRIS.
// Used by the nightly sync job; bypasses the GET cache since the sync wants
// authoritative data.
func (c *Client) ListDirectoryEmployees(ctx context.Context) ([]employee.DirectoryRecord, error) {
	data, err := c.Request(ctx, http.MethodGet, "/v1/directory/employees", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch directory: %w", err)
	}
	var records []employee.DirectoryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode directory response: %w", err)
	}
	return records, nil
}

// FetchHolidays fetches the public holiday calendar for a year. Callers are
// expected to wrap this in a cache.Loader; the raw call always hits the API.
func (c *Client) FetchHolidays(ctx context.Context, year int) ([]leave.Holiday, error) {
	data, err := c.Request(ctx, http.MethodGet, fmt.Sprintf("/v1/calendar/holidays?year=%d", year), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays for %d: %w", year, err)
	}
	var holidays []leave.Holiday
	if err := json.Unmarshal(data, &holidays); err != nil {
		return nil, fmt.Errorf("failed to decode holiday response: %w", err)
	}
	return holidays, nil
}
