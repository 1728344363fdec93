package ports

import "context"

// EmailSender defines the interface for outbound portal email
type EmailSender interface {
	SendLeaveSubmitted(ctx context.Context, managerEmail, employeeName string, businessDays int) error
	SendLeaveDecision(ctx context.Context, employeeEmail string, approved bool, reviewNote string) error
	SendTimesheetReminder(ctx context.Context, employeeEmail string, weekStart string) error
}
