package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/funeral-admin-api/internal/models"
)

// AuditRepository persists the append-only audit trail.
type AuditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository constructs an AuditRepository.
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create appends an audit entry.
func (r *AuditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO audit_logs (id, user_id, action, entity_type, entity_id, old_values, new_values, created_at)
        VALUES (:id, :user_id, :action, :entity_type, :entity_id, :old_values, :new_values, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}

// List returns entries newest first. Search matches action or entity type.
func (r *AuditRepository) List(ctx context.Context, filter models.AuditFilter) ([]models.AuditLog, error) {
	w := newWhere()
	w.eq("user_id", filter.UserID)
	w.eq("action", filter.Action)
	w.eq("entity_type", filter.EntityType)
	w.eq("entity_id", filter.EntityID)
	w.search(filter.Search, "action", "entity_type")

	query := fmt.Sprintf("SELECT id, user_id, action, entity_type, entity_id, old_values, new_values, created_at FROM audit_logs %s ORDER BY created_at DESC", w)
	if filter.Limit > 0 {
		query = fmt.Sprintf("%s LIMIT %d", query, filter.Limit)
	}
	entries := make([]models.AuditLog, 0)
	if err := r.db.SelectContext(ctx, &entries, query, w.args...); err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return entries, nil
}
