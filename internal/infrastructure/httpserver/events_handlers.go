package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	heartbeatInterval = 30 * time.Second
	statsInterval     = 60 * time.Second
	// Connections are capped so a restart or deploy never strands a stream;
	// clients reconnect transparently via EventSource.
	maxStreamDuration = 5 * time.Minute
)

// streamEvents pushes pending-approval counts to manager dashboards over
// Server-Sent Events.
func (s *Server) streamEvents(c echo.Context) error {
	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if err := writeSSE(w, "connection", map[string]interface{}{
		"status":    "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		return err
	}

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()
	stats := time.NewTicker(statsInterval)
	defer stats.Stop()
	deadline := time.NewTimer(maxStreamDuration)
	defer deadline.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-deadline.C:
			return nil
		case <-heartbeat.C:
			if err := writeSSE(w, "heartbeat", map[string]interface{}{
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			}); err != nil {
				return nil
			}
		case <-stats.C:
			pendingTimesheets, err := s.timesheetSvc.CountPending(ctx)
			if err != nil {
				if s.logger != nil {
					s.logger.WithError(err).Warn("event stream: failed to count pending timesheets")
				}
				continue
			}
			pendingLeaves, err := s.leaveSvc.CountPending(ctx)
			if err != nil {
				if s.logger != nil {
					s.logger.WithError(err).Warn("event stream: failed to count pending leave requests")
				}
				continue
			}
			if err := writeSSE(w, "stats", map[string]interface{}{
				"pending_timesheets": pendingTimesheets,
				"pending_leaves":     pendingLeaves,
				"timestamp":          time.Now().UTC().Format(time.RFC3339),
			}); err != nil {
				return nil
			}
		}
	}
}

func writeSSE(w *echo.Response, event string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return err
	}
	w.Flush()
	return nil
}
