package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/talentfold/hr-portal/internal/core/domain/audit"
	"github.com/talentfold/hr-portal/internal/core/domain/timesheet"
	"github.com/talentfold/hr-portal/internal/core/ports"
)

type TimesheetService struct {
	repo         ports.TimesheetRepository
	employeeRepo ports.EmployeeRepository
	emailSender  ports.EmailSender
	auditService ports.AuditService
	logger       *logrus.Logger
}

func NewTimesheetService(repo ports.TimesheetRepository, employeeRepo ports.EmployeeRepository, emailSender ports.EmailSender, auditService ports.AuditService, logger *logrus.Logger) ports.TimesheetService {
	return &TimesheetService{
		repo:         repo,
		employeeRepo: employeeRepo,
		emailSender:  emailSender,
		auditService: auditService,
		logger:       logger,
	}
}

// UpsertDraft creates or replaces the draft timesheet for the week containing
// req.WeekStart. Submitted and approved timesheets cannot be edited.
func (s *TimesheetService) UpsertDraft(ctx context.Context, employeeID uuid.UUID, req *timesheet.UpsertTimesheetRequest) (*timesheet.Timesheet, error) {
	weekStart := timesheet.WeekStartFor(req.WeekStart)

	existing, err := s.repo.GetByWeek(ctx, employeeID, weekStart)
	if err == nil {
		switch existing.Status {
		case timesheet.StatusDraft, timesheet.StatusRejected:
			// editable
		default:
			return nil, fmt.Errorf("timesheet for week %s is %s and cannot be edited", weekStart.Format("2006-01-02"), existing.Status)
		}

		existing.Entries = req.Entries
		existing.TotalHours = existing.Total()
		existing.Status = timesheet.StatusDraft
		existing.UpdatedAt = time.Now()
		if err := existing.Validate(); err != nil {
			return nil, err
		}
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update timesheet: %w", err)
		}
		return existing, nil
	}

	t := &timesheet.Timesheet{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		WeekStart:  weekStart,
		Status:     timesheet.StatusDraft,
		Entries:    req.Entries,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	t.TotalHours = t.Total()
	if err := t.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create timesheet: %w", err)
	}
	return t, nil
}

func (s *TimesheetService) Submit(ctx context.Context, employeeID, timesheetID uuid.UUID) (*timesheet.Timesheet, error) {
	t, err := s.repo.GetByID(ctx, timesheetID)
	if err != nil {
		return nil, err
	}
	if t.EmployeeID != employeeID {
		return nil, fmt.Errorf("timesheet belongs to another employee")
	}
	if !t.Status.CanTransitionTo(timesheet.StatusSubmitted) {
		return nil, fmt.Errorf("cannot submit a %s timesheet", t.Status)
	}
	if len(t.Entries) == 0 {
		return nil, fmt.Errorf("cannot submit an empty timesheet")
	}

	now := time.Now()
	t.Status = timesheet.StatusSubmitted
	t.SubmittedAt = &now
	t.UpdatedAt = now
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to submit timesheet: %w", err)
	}

	if s.auditService != nil {
		_ = s.auditService.LogAction(ctx, &audit.CreateAuditLogRequest{
			ActorID:    &employeeID,
			Action:     audit.ActionSubmit,
			Resource:   audit.ResourceTimesheet,
			ResourceID: &t.ID,
		})
	}

	return t, nil
}

func (s *TimesheetService) Decide(ctx context.Context, reviewerID, timesheetID uuid.UUID, req *timesheet.DecideTimesheetRequest) (*timesheet.Timesheet, error) {
	reviewer, err := s.employeeRepo.GetByID(ctx, reviewerID)
	if err != nil {
		return nil, fmt.Errorf("reviewer not found: %w", err)
	}
	if !reviewer.Role.CanManage() {
		return nil, fmt.Errorf("employee %s may not review timesheets", reviewerID)
	}

	t, err := s.repo.GetByID(ctx, timesheetID)
	if err != nil {
		return nil, err
	}
	if t.EmployeeID == reviewerID {
		return nil, fmt.Errorf("cannot review your own timesheet")
	}

	next := timesheet.StatusRejected
	action := audit.ActionReject
	if req.Approve {
		next = timesheet.StatusApproved
		action = audit.ActionApprove
	}
	if !t.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("cannot move a %s timesheet to %s", t.Status, next)
	}

	now := time.Now()
	t.Status = next
	t.DecidedAt = &now
	t.DecidedBy = &reviewerID
	t.ReviewNote = req.ReviewNote
	t.UpdatedAt = now
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to decide timesheet: %w", err)
	}

	if s.auditService != nil {
		_ = s.auditService.LogAction(ctx, &audit.CreateAuditLogRequest{
			ActorID:    &reviewerID,
			Action:     action,
			Resource:   audit.ResourceTimesheet,
			ResourceID: &t.ID,
		})
	}

	return t, nil
}

func (s *TimesheetService) GetTimesheet(ctx context.Context, id uuid.UUID) (*timesheet.Timesheet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *TimesheetService) ListForEmployee(ctx context.Context, employeeID uuid.UUID, limit, offset int) ([]*timesheet.Timesheet, error) {
	return s.repo.ListByEmployee(ctx, employeeID, limit, offset)
}

func (s *TimesheetService) ListPending(ctx context.Context, limit, offset int) ([]*timesheet.Timesheet, error) {
	return s.repo.ListByStatus(ctx, timesheet.StatusSubmitted, limit, offset)
}

func (s *TimesheetService) CountPending(ctx context.Context) (int, error) {
	return s.repo.CountByStatus(ctx, timesheet.StatusSubmitted)
}

// SendWeeklyReminders emails every active employee who has not submitted a
// timesheet for last week. Returns the number of reminders sent.
func (s *TimesheetService) SendWeeklyReminders(ctx context.Context) (int, error) {
	lastWeek := timesheet.WeekStartFor(time.Now().AddDate(0, 0, -7))

	missing, err := s.repo.MissingForWeek(ctx, lastWeek)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, id := range missing {
		e, err := s.employeeRepo.GetByID(ctx, id)
		if err != nil {
			if s.logger != nil {
				s.logger.WithFields(logrus.Fields{"employee_id": id}).WithError(err).Warn("timesheet reminder: failed to load employee")
			}
			continue
		}
		if err := s.emailSender.SendTimesheetReminder(ctx, e.Email, lastWeek.Format("2006-01-02")); err != nil {
			if s.logger != nil {
				s.logger.WithFields(logrus.Fields{"employee_id": id}).WithError(err).Warn("timesheet reminder: failed to send email")
			}
			continue
		}
		sent++
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"week_start": lastWeek.Format("2006-01-02"), "missing": len(missing), "sent": sent}).Info("weekly timesheet reminders sent")
	}
	return sent, nil
}
