package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/talentfold/hr-portal/internal/core/domain/settings"
)

// SettingsRepository defines the interface for settings data operations
type SettingsRepository interface {
	Upsert(ctx context.Context, s *settings.Setting) error
	GetByKey(ctx context.Context, key string) (*settings.Setting, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, category string, limit, offset int) ([]*settings.Setting, error)
	Count(ctx context.Context, category string) (int, error)
}

// SettingsService defines the interface for settings business logic
type SettingsService interface {
	UpsertSetting(ctx context.Context, actorID uuid.UUID, req *settings.UpsertSettingRequest) (*settings.Setting, error)
	GetSetting(ctx context.Context, key string) (*settings.Setting, error)
	DeleteSetting(ctx context.Context, key string) error
	ListSettings(ctx context.Context, category string, limit, offset int) ([]*settings.Setting, int, error)
}
