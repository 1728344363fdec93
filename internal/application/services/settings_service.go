package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/talentfold/hr-portal/internal/core/domain/audit"
	"github.com/talentfold/hr-portal/internal/core/domain/settings"
	"github.com/talentfold/hr-portal/internal/core/ports"
)

type SettingsService struct {
	repo         ports.SettingsRepository
	auditService ports.AuditService
	logger       *logrus.Logger
}

func NewSettingsService(repo ports.SettingsRepository, auditService ports.AuditService, logger *logrus.Logger) ports.SettingsService {
	return &SettingsService{
		repo:         repo,
		auditService: auditService,
		logger:       logger,
	}
}

func (s *SettingsService) UpsertSetting(ctx context.Context, actorID uuid.UUID, req *settings.UpsertSettingRequest) (*settings.Setting, error) {
	if req.Key == "" {
		return nil, fmt.Errorf("setting key is required")
	}

	setting := &settings.Setting{
		ID:          uuid.New(),
		Key:         req.Key,
		Value:       req.Value,
		Category:    req.Category,
		Description: req.Description,
		UpdatedBy:   actorID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.repo.Upsert(ctx, setting); err != nil {
		return nil, err
	}

	if s.auditService != nil {
		_ = s.auditService.LogAction(ctx, &audit.CreateAuditLogRequest{
			ActorID:  &actorID,
			Action:   audit.ActionUpdate,
			Resource: audit.ResourceSetting,
			Details:  map[string]string{"key": req.Key},
		})
	}

	return s.repo.GetByKey(ctx, req.Key)
}

func (s *SettingsService) GetSetting(ctx context.Context, key string) (*settings.Setting, error) {
	return s.repo.GetByKey(ctx, key)
}

func (s *SettingsService) DeleteSetting(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}

func (s *SettingsService) ListSettings(ctx context.Context, category string, limit, offset int) ([]*settings.Setting, int, error) {
	items, err := s.repo.List(ctx, category, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	count, err := s.repo.Count(ctx, category)
	if err != nil {
		return nil, 0, err
	}

	return items, count, nil
}
