package timesheet

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// CanTransitionTo enforces the draft -> submitted -> approved|rejected flow.
// A rejected timesheet goes back to draft for correction.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusDraft:
		return next == StatusSubmitted
	case StatusSubmitted:
		return next == StatusApproved || next == StatusRejected
	case StatusRejected:
		return next == StatusDraft
	default:
		return false
	}
}

// Timesheet is one employee's hours for a single week. WeekStart is always a
// Monday; there is at most one timesheet per employee per week.
type Timesheet struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	EmployeeID  uuid.UUID  `json:"employee_id" db:"employee_id"`
	WeekStart   time.Time  `json:"week_start" db:"week_start"`
	Status      Status     `json:"status" db:"status"`
	Entries     Entries    `json:"entries" db:"entries"`
	TotalHours  float64    `json:"total_hours" db:"total_hours"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty" db:"submitted_at"`
	DecidedAt   *time.Time `json:"decided_at,omitempty" db:"decided_at"`
	DecidedBy   *uuid.UUID `json:"decided_by,omitempty" db:"decided_by"`
	ReviewNote  *string    `json:"review_note,omitempty" db:"review_note"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// Entry is a single day's worked hours.
type Entry struct {
	Day     time.Weekday `json:"day"`
	Hours   float64      `json:"hours"`
	Project string       `json:"project,omitempty"`
	Note    string       `json:"note,omitempty"`
}

// Total sums the hours across all entries.
func (t *Timesheet) Total() float64 {
	var total float64
	for _, e := range t.Entries {
		total += e.Hours
	}
	return total
}

// Validate checks entry sanity before submission.
func (t *Timesheet) Validate() error {
	if t.WeekStart.Weekday() != time.Monday {
		return fmt.Errorf("week_start %s is not a Monday", t.WeekStart.Format("2006-01-02"))
	}
	for _, e := range t.Entries {
		if e.Hours < 0 || e.Hours > 24 {
			return fmt.Errorf("invalid hours %.2f for %s", e.Hours, e.Day)
		}
	}
	return nil
}

// WeekStartFor normalizes any date to the Monday of its week, truncated to UTC midnight.
func WeekStartFor(t time.Time) time.Time {
	t = t.UTC().Truncate(24 * time.Hour)
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return t.AddDate(0, 0, -offset)
}

// UpsertTimesheetRequest creates or replaces the draft for a week.
type UpsertTimesheetRequest struct {
	WeekStart time.Time `json:"week_start" validate:"required"`
	Entries   Entries   `json:"entries" validate:"required"`
}

// DecideTimesheetRequest approves or rejects a submitted timesheet.
type DecideTimesheetRequest struct {
	Approve    bool    `json:"approve"`
	ReviewNote *string `json:"review_note,omitempty"`
}
