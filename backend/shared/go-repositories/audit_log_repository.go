package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/newsroom/mono-repo/backend/shared/go-models"
)

type AuditLogRepository interface {
	Create(ctx context.Context, logEntry *models.AuditLog) error
	ListForTarget(ctx context.Context, targetID uuid.UUID) ([]*models.AuditLog, error)
}

type auditLogRepo struct {
	db DB
}

func NewAuditLogRepository(db DB) AuditLogRepository {
	return &auditLogRepo{db: db}
}

func (r *auditLogRepo) Create(ctx context.Context, logEntry *models.AuditLog) error {
	q := `
        INSERT INTO audit_logs (
            id, editor_id, action, target_id, target_type, details, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, NOW())
    `
	_, err := r.db.Exec(ctx, q,
		logEntry.ID,
		logEntry.EditorID,
		logEntry.Action,
		logEntry.TargetID,
		logEntry.TargetType,
		logEntry.Details,
	)
	return err
}

func (r *auditLogRepo) ListForTarget(ctx context.Context, targetID uuid.UUID) ([]*models.AuditLog, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, editor_id, action, target_id, target_type, details, created_at
        FROM audit_logs WHERE target_id=$1
        ORDER BY created_at DESC`, targetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.AuditLog
	for rows.Next() {
		var l models.AuditLog
		if err := rows.Scan(&l.ID, &l.EditorID, &l.Action, &l.TargetID, &l.TargetType, &l.Details, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}
