package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/talentfold/hr-portal/internal/core/domain/audit"
	"github.com/talentfold/hr-portal/internal/core/ports"
)

type AuditService struct {
	repo   ports.AuditRepository
	logger *logrus.Logger
}

func NewAuditService(repo ports.AuditRepository, logger *logrus.Logger) ports.AuditService {
	return &AuditService{
		repo:   repo,
		logger: logger,
	}
}

func (s *AuditService) LogAction(ctx context.Context, req *audit.CreateAuditLogRequest) error {
	auditLog := &audit.AuditLog{
		ActorID:    req.ActorID,
		Action:     string(req.Action),
		Resource:   string(req.Resource),
		ResourceID: req.ResourceID,
		Details:    req.Details,
		IPAddress:  req.IPAddress,
		UserAgent:  req.UserAgent,
		Timestamp:  time.Now(),
	}

	if err := s.repo.Create(ctx, auditLog); err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"actor_id": req.ActorID, "action": req.Action, "resource": req.Resource}).WithError(err).Error("failed to persist audit log")
		}
		return err
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"actor_id": req.ActorID, "action": req.Action, "resource": req.Resource, "resource_id": req.ResourceID}).Debug("audit log persisted")
	}
	return nil
}

func (s *AuditService) GetAuditLogs(ctx context.Context, filter *audit.AuditLogFilter) ([]*audit.AuditLog, int, error) {
	logs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
