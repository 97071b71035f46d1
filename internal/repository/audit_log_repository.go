package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/AlissonS47/backend-assessment/internal/domain"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]domain.AuditLog, error)
}

type auditLogRepository struct {
	db *sqlx.DB
}

func NewAuditLogRepository(db *sqlx.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, user_id, action, entity_type, entity_id, old_value, new_value)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		log.ID, log.UserID, log.Action, log.EntityType, log.EntityID,
		log.OldValue, log.NewValue,
	).Scan(&log.CreatedAt)
}

func (r *auditLogRepository) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]domain.AuditLog, error) {
	logs := []domain.AuditLog{}
	query := `
		SELECT * FROM audit_logs
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &logs, query, entityType, entityID)
	return logs, err
}

// CreateAuditLog marshals the before/after snapshots and writes the entry.
// Audit writes are best-effort; callers ignore the returned error.
func CreateAuditLog(repo AuditLogRepository, ctx context.Context, input domain.CreateAuditLogInput) error {
	log := &domain.AuditLog{
		ID:         uuid.New(),
		UserID:     input.UserID,
		Action:     input.Action,
		EntityType: input.EntityType,
		EntityID:   input.EntityID,
	}

	if input.OldValue != nil {
		if data, err := json.Marshal(input.OldValue); err == nil {
			log.OldValue = data
		}
	}
	if input.NewValue != nil {
		if data, err := json.Marshal(input.NewValue); err == nil {
			log.NewValue = data
		}
	}

	return repo.Create(ctx, log)
}
