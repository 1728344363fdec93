package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/talentfold/hr-portal/internal/core/domain/audit"
	"github.com/talentfold/hr-portal/internal/core/ports"
	"github.com/talentfold/hr-portal/internal/infrastructure/db"
)

type auditRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewAuditRepository creates a new instance of AuditRepository
func NewAuditRepository(database *db.Database, logger *logrus.Logger) ports.AuditRepository {
	return &auditRepository{
		db:     database,
		logger: logger,
	}
}

// Create inserts a new audit log entry into the database
func (r *auditRepository) Create(ctx context.Context, log *audit.AuditLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now()
	}

	var detailsJSON []byte
	var err error
	if log.Details != nil {
		detailsJSON, err = json.Marshal(log.Details)
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO audit_logs (
			id, actor_id, action, resource, resource_id,
			details, ip_address, user_agent, timestamp
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)`

	_, err = r.db.DB.ExecContext(ctx, query,
		log.ID,
		log.ActorID,
		log.Action,
		log.Resource,
		log.ResourceID,
		detailsJSON,
		log.IPAddress,
		log.UserAgent,
		log.Timestamp,
	)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"actor_id": log.ActorID, "action": log.Action}).WithError(err).Error("db: failed to insert audit log")
		}
		return err
	}
	return nil
}

// List retrieves audit logs based on the provided filter
func (r *auditRepository) List(ctx context.Context, filter *audit.AuditLogFilter) ([]*audit.AuditLog, error) {
	query, args := r.buildListQuery(filter, false)

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	defer rows.Close()

	var logs []*audit.AuditLog
	for rows.Next() {
		var log audit.AuditLog
		var detailsJSON []byte
		if err := rows.Scan(
			&log.ID, &log.ActorID, &log.Action, &log.Resource, &log.ResourceID,
			&detailsJSON, &log.IPAddress, &log.UserAgent, &log.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit log: %w", err)
		}
		if len(detailsJSON) > 0 {
			var details any
			if err := json.Unmarshal(detailsJSON, &details); err == nil {
				log.Details = details
			}
		}
		logs = append(logs, &log)
	}

	return logs, rows.Err()
}

// Count returns the number of audit logs matching the filter
func (r *auditRepository) Count(ctx context.Context, filter *audit.AuditLogFilter) (int, error) {
	query, args := r.buildListQuery(filter, true)

	var count int
	if err := r.db.DB.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count audit logs: %w", err)
	}
	return count, nil
}

// buildListQuery assembles the filtered query; countOnly switches the
// projection and drops ordering/pagination.
func (r *auditRepository) buildListQuery(filter *audit.AuditLogFilter, countOnly bool) (string, []any) {
	var sb strings.Builder
	if countOnly {
		sb.WriteString(`SELECT COUNT(*) FROM audit_logs`)
	} else {
		sb.WriteString(`SELECT id, actor_id, action, resource, resource_id, details, ip_address, user_agent, timestamp FROM audit_logs`)
	}

	var conditions []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter != nil {
		if filter.ActorID != nil {
			conditions = append(conditions, "actor_id = "+arg(*filter.ActorID))
		}
		if filter.Action != nil {
			conditions = append(conditions, "action = "+arg(string(*filter.Action)))
		}
		if filter.Resource != nil {
			conditions = append(conditions, "resource = "+arg(string(*filter.Resource)))
		}
		if filter.ResourceID != nil {
			conditions = append(conditions, "resource_id = "+arg(*filter.ResourceID))
		}
		if filter.StartTime != nil {
			conditions = append(conditions, "timestamp >= "+arg(*filter.StartTime))
		}
		if filter.EndTime != nil {
			conditions = append(conditions, "timestamp <= "+arg(*filter.EndTime))
		}
	}

	if len(conditions) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}

	if !countOnly {
		sb.WriteString(" ORDER BY timestamp DESC")
		limit := 50
		if filter != nil && filter.Limit > 0 {
			limit = filter.Limit
		}
		sb.WriteString(" LIMIT " + arg(limit))
		if filter != nil && filter.Offset > 0 {
			sb.WriteString(" OFFSET " + arg(filter.Offset))
		}
	}

	return sb.String(), args
}
