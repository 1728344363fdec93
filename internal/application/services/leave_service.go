package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/talentfold/hr-portal/internal/core/domain/audit"
	"github.com/talentfold/hr-portal/internal/core/domain/leave"
	"github.com/talentfold/hr-portal/internal/core/ports"
)

type LeaveService struct {
	repo         ports.LeaveRepository
	employeeRepo ports.EmployeeRepository
	holidays     ports.HolidayProvider
	emailSender  ports.EmailSender
	auditService ports.AuditService
	logger       *logrus.Logger
}

func NewLeaveService(repo ports.LeaveRepository, employeeRepo ports.EmployeeRepository, holidays ports.HolidayProvider, emailSender ports.EmailSender, auditService ports.AuditService, logger *logrus.Logger) ports.LeaveService {
	return &LeaveService{
		repo:         repo,
		employeeRepo: employeeRepo,
		holidays:     holidays,
		emailSender:  emailSender,
		auditService: auditService,
		logger:       logger,
	}
}

func (s *LeaveService) CreateRequest(ctx context.Context, employeeID uuid.UUID, req *leave.CreateLeaveRequest) (*leave.Request, error) {
	e, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !e.IsActive {
		return nil, fmt.Errorf("employee account is disabled")
	}

	r := &leave.Request{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Type:       req.Type,
		StartDate:  req.StartDate.UTC().Truncate(24 * time.Hour),
		EndDate:    req.EndDate.UTC().Truncate(24 * time.Hour),
		Reason:     req.Reason,
		Status:     leave.StatusPending,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	days, err := s.businessDays(ctx, r.StartDate, r.EndDate)
	if err != nil {
		return nil, err
	}
	if days == 0 {
		return nil, fmt.Errorf("request covers no business days")
	}
	r.BusinessDays = days

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to create leave request: %w", err)
	}

	// Notify the manager; failures must not fail the request.
	if s.emailSender != nil && e.ManagerID != nil {
		if mgr, err := s.employeeRepo.GetByID(ctx, *e.ManagerID); err == nil {
			name := fmt.Sprintf("%s %s", e.FirstName, e.LastName)
			if err := s.emailSender.SendLeaveSubmitted(ctx, mgr.Email, name, r.BusinessDays); err != nil {
				if s.logger != nil {
					s.logger.WithFields(logrus.Fields{"request_id": r.ID}).WithError(err).Warn("failed to send leave submission email")
				}
			}
		}
	}

	if s.auditService != nil {
		_ = s.auditService.LogAction(ctx, &audit.CreateAuditLogRequest{
			ActorID:    &employeeID,
			Action:     audit.ActionCreate,
			Resource:   audit.ResourceLeave,
			ResourceID: &r.ID,
		})
	}

	return r, nil
}

func (s *LeaveService) Decide(ctx context.Context, reviewerID, requestID uuid.UUID, req *leave.DecideLeaveRequest) (*leave.Request, error) {
	reviewer, err := s.employeeRepo.GetByID(ctx, reviewerID)
	if err != nil {
		return nil, fmt.Errorf("reviewer not found: %w", err)
	}
	if !reviewer.Role.CanManage() {
		return nil, fmt.Errorf("employee %s may not review leave requests", reviewerID)
	}

	r, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if r.EmployeeID == reviewerID {
		return nil, fmt.Errorf("cannot review your own leave request")
	}
	if r.Status != leave.StatusPending {
		return nil, fmt.Errorf("leave request is already %s", r.Status)
	}

	action := audit.ActionReject
	r.Status = leave.StatusRejected
	if req.Approve {
		r.Status = leave.StatusApproved
		action = audit.ActionApprove
	}

	now := time.Now()
	r.ReviewerID = &reviewerID
	r.ReviewNote = req.ReviewNote
	r.DecidedAt = &now
	r.UpdatedAt = now
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to decide leave request: %w", err)
	}

	if s.emailSender != nil {
		if e, err := s.employeeRepo.GetByID(ctx, r.EmployeeID); err == nil {
			note := ""
			if req.ReviewNote != nil {
				note = *req.ReviewNote
			}
			if err := s.emailSender.SendLeaveDecision(ctx, e.Email, req.Approve, note); err != nil {
				if s.logger != nil {
					s.logger.WithFields(logrus.Fields{"request_id": r.ID}).WithError(err).Warn("failed to send leave decision email")
				}
			}
		}
	}

	if s.auditService != nil {
		_ = s.auditService.LogAction(ctx, &audit.CreateAuditLogRequest{
			ActorID:    &reviewerID,
			Action:     action,
			Resource:   audit.ResourceLeave,
			ResourceID: &r.ID,
		})
	}

	return r, nil
}

func (s *LeaveService) Cancel(ctx context.Context, employeeID, requestID uuid.UUID) (*leave.Request, error) {
	r, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if r.EmployeeID != employeeID {
		return nil, fmt.Errorf("leave request belongs to another employee")
	}
	if r.Status.IsFinal() {
		return nil, fmt.Errorf("leave request is already %s", r.Status)
	}
	// Approved leave that already started cannot be cancelled.
	if r.Status == leave.StatusApproved && !time.Now().Before(r.StartDate) {
		return nil, fmt.Errorf("leave has already started")
	}

	r.Status = leave.StatusCancelled
	r.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to cancel leave request: %w", err)
	}

	return r, nil
}

func (s *LeaveService) GetRequest(ctx context.Context, id uuid.UUID) (*leave.Request, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *LeaveService) ListForEmployee(ctx context.Context, employeeID uuid.UUID, limit, offset int) ([]*leave.Request, error) {
	return s.repo.ListByEmployee(ctx, employeeID, limit, offset)
}

func (s *LeaveService) ListPending(ctx context.Context, limit, offset int) ([]*leave.Request, error) {
	return s.repo.ListByStatus(ctx, leave.StatusPending, limit, offset)
}

func (s *LeaveService) CountPending(ctx context.Context) (int, error) {
	return s.repo.CountByStatus(ctx, leave.StatusPending)
}

// SweepExpired cancels pending requests whose end date has passed. Runs from
// the scheduler.
func (s *LeaveService) SweepExpired(ctx context.Context) (int, error) {
	cutoff := time.Now().UTC().Truncate(24 * time.Hour)
	swept, err := s.repo.CancelOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if swept > 0 && s.logger != nil {
		s.logger.WithFields(logrus.Fields{"swept": swept}).Info("cancelled expired pending leave requests")
	}
	return swept, nil
}

// businessDays counts weekdays in [start, end] excluding public holidays.
// Stale holiday data is accepted; a hard calendar failure rejects the request.
func (s *LeaveService) businessDays(ctx context.Context, start, end time.Time) (int, error) {
	holidaySet := make(map[string]struct{})
	if s.holidays != nil {
		for year := start.Year(); year <= end.Year(); year++ {
			hs, stale, err := s.holidays.Holidays(ctx, year)
			if err != nil {
				return 0, fmt.Errorf("holiday calendar unavailable: %w", err)
			}
			if stale && s.logger != nil {
				s.logger.WithFields(logrus.Fields{"year": year}).Warn("using stale holiday calendar")
			}
			for _, h := range hs {
				holidaySet[h.Date.Format("2006-01-02")] = struct{}{}
			}
		}
	}

	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		if _, isHoliday := holidaySet[d.Format("2006-01-02")]; isHoliday {
			continue
		}
		days++
	}
	return days, nil
}
