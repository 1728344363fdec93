package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/talentfold/hr-portal/internal/core/domain/settings"
	"github.com/talentfold/hr-portal/internal/core/ports"
	"github.com/talentfold/hr-portal/internal/infrastructure/db"
)

// SettingsRepository implements the settings repository interface
type SettingsRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(database *db.Database, logger *logrus.Logger) ports.SettingsRepository {
	return &SettingsRepository{
		db:     database,
		logger: logger,
	}
}

// Upsert creates or replaces a setting by key
func (r *SettingsRepository) Upsert(ctx context.Context, s *settings.Setting) error {
	query := `
		INSERT INTO settings (id, key, value, category, description, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
			category = EXCLUDED.category,
			description = EXCLUDED.description,
			updated_by = EXCLUDED.updated_by,
			updated_at = now()`

	_, err := r.db.DB.ExecContext(ctx, query, s.ID, s.Key, s.Value, s.Category, s.Description, s.UpdatedBy)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"key": s.Key}).WithError(err).Error("db: failed to upsert setting")
		}
		return fmt.Errorf("failed to upsert setting: %w", err)
	}

	return nil
}

// GetByKey retrieves a setting by key
func (r *SettingsRepository) GetByKey(ctx context.Context, key string) (*settings.Setting, error) {
	var s settings.Setting
	query := `SELECT id, key, value, category, description, updated_by, created_at, updated_at FROM settings WHERE key = $1`

	err := r.db.DB.GetContext(ctx, &s, query, key)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("setting with key %s not found", key)
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"key": key}).WithError(err).Error("db: failed to get setting by key")
		}
		return nil, fmt.Errorf("failed to get setting by key: %w", err)
	}

	return &s, nil
}

// Delete deletes a setting by key
func (r *SettingsRepository) Delete(ctx context.Context, key string) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM settings WHERE key = $1`, key)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"key": key}).WithError(err).Error("db: failed to delete setting")
		}
		return fmt.Errorf("failed to delete setting: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("setting with key %s not found", key)
	}

	return nil
}

// List retrieves settings, optionally filtered by category
func (r *SettingsRepository) List(ctx context.Context, category string, limit, offset int) ([]*settings.Setting, error) {
	var items []*settings.Setting
	var err error
	if category == "" {
		query := `SELECT id, key, value, category, description, updated_by, created_at, updated_at FROM settings ORDER BY key LIMIT $1 OFFSET $2`
		err = r.db.DB.SelectContext(ctx, &items, query, limit, offset)
	} else {
		query := `SELECT id, key, value, category, description, updated_by, created_at, updated_at FROM settings WHERE category = $1 ORDER BY key LIMIT $2 OFFSET $3`
		err = r.db.DB.SelectContext(ctx, &items, query, category, limit, offset)
	}
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"category": category}).WithError(err).Error("db: failed to list settings")
		}
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}

	return items, nil
}

// Count returns the number of settings, optionally filtered by category
func (r *SettingsRepository) Count(ctx context.Context, category string) (int, error) {
	var count int
	var err error
	if category == "" {
		err = r.db.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM settings`)
	} else {
		err = r.db.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM settings WHERE category = $1`, category)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count settings: %w", err)
	}

	return count, nil
}
