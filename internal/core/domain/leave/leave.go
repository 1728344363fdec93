package leave

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeVacation Type = "vacation"
	TypeSick     Type = "sick"
	TypeUnpaid   Type = "unpaid"
	TypeParental Type = "parental"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeVacation, TypeSick, TypeUnpaid, TypeParental:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsFinal reports whether the request can no longer change state.
func (s Status) IsFinal() bool {
	return s == StatusRejected || s == StatusCancelled
}

// Request is a single leave request. BusinessDays counts weekdays in
// [StartDate, EndDate] excluding public holidays.
type Request struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	EmployeeID   uuid.UUID  `json:"employee_id" db:"employee_id"`
	Type         Type       `json:"type" db:"type"`
	StartDate    time.Time  `json:"start_date" db:"start_date"`
	EndDate      time.Time  `json:"end_date" db:"end_date"`
	BusinessDays int        `json:"business_days" db:"business_days"`
	Reason       string     `json:"reason" db:"reason"`
	Status       Status     `json:"status" db:"status"`
	ReviewerID   *uuid.UUID `json:"reviewer_id,omitempty" db:"reviewer_id"`
	ReviewNote   *string    `json:"review_note,omitempty" db:"review_note"`
	DecidedAt    *time.Time `json:"decided_at,omitempty" db:"decided_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// Validate checks the date range before persisting.
func (r *Request) Validate() error {
	if !r.Type.IsValid() {
		return fmt.Errorf("invalid leave type %q", r.Type)
	}
	if r.EndDate.Before(r.StartDate) {
		return fmt.Errorf("end_date precedes start_date")
	}
	return nil
}

// Holiday is a public holiday as published by the upstream HRIS calendar.
type Holiday struct {
	Date time.Time `json:"date"`
	Name string    `json:"name"`
}

// CreateLeaveRequest represents the request to open a leave request
type CreateLeaveRequest struct {
	Type      Type      `json:"type" validate:"required"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
	Reason    string    `json:"reason,omitempty"`
}

// DecideLeaveRequest approves or rejects a pending leave request
type DecideLeaveRequest struct {
	Approve    bool    `json:"approve"`
	ReviewNote *string `json:"review_note,omitempty"`
}
