package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/funeral-admin-api/internal/models"
)

const checklistColumns = `id, event_id, phase, task_name, description, due_date, sort_order, completed, completed_at, completed_by, created_at, updated_at`

const checklistOrder = `ORDER BY event_id, CASE phase WHEN 'pre_event' THEN 1 WHEN 'during_event' THEN 2 ELSE 3 END, sort_order`

// ChecklistRepository manages event checklist items.
type ChecklistRepository struct {
	db *sqlx.DB
}

// NewChecklistRepository constructs a ChecklistRepository.
func NewChecklistRepository(db *sqlx.DB) *ChecklistRepository {
	return &ChecklistRepository{db: db}
}

// List returns checklist items in phase then template order.
func (r *ChecklistRepository) List(ctx context.Context, filter models.ChecklistFilter) ([]models.ChecklistItem, error) {
	w := newWhere()
	w.eq("event_id", filter.EventID)
	w.eq("phase", string(filter.Phase))
	if filter.Completed != nil {
		w.cmp("completed", "=", *filter.Completed)
	}

	query := fmt.Sprintf("SELECT %s FROM checklist_items %s %s", checklistColumns, w, checklistOrder)
	items := make([]models.ChecklistItem, 0)
	if err := r.db.SelectContext(ctx, &items, query, w.args...); err != nil {
		return nil, fmt.Errorf("list checklist items: %w", err)
	}
	return items, nil
}

// CountByEvent returns how many items an event already has.
func (r *ChecklistRepository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(1) FROM checklist_items WHERE event_id = $1`, eventID); err != nil {
		return 0, fmt.Errorf("count checklist items: %w", err)
	}
	return count, nil
}

// FindByID fetches a checklist item by ID.
func (r *ChecklistRepository) FindByID(ctx context.Context, id string) (*models.ChecklistItem, error) {
	query := fmt.Sprintf("SELECT %s FROM checklist_items WHERE id = $1", checklistColumns)
	var item models.ChecklistItem
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateBatch inserts all items in one transaction.
func (r *ChecklistRepository) CreateBatch(ctx context.Context, items []models.ChecklistItem) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin checklist batch: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	const query = `INSERT INTO checklist_items (id, event_id, phase, task_name, description, due_date, sort_order, completed, completed_at, completed_by, created_at, updated_at)
        VALUES (:id, :event_id, :phase, :task_name, :description, :due_date, :sort_order, :completed, :completed_at, :completed_by, :created_at, :updated_at)`
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
		if items[i].CreatedAt.IsZero() {
			items[i].CreatedAt = now
		}
		items[i].UpdatedAt = now
		if _, err = tx.NamedExecContext(ctx, query, &items[i]); err != nil {
			return fmt.Errorf("insert checklist item: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit checklist batch: %w", err)
	}
	return nil
}

// Update overwrites an item's editable fields and completion stamp.
func (r *ChecklistRepository) Update(ctx context.Context, item *models.ChecklistItem) error {
	item.UpdatedAt = time.Now().UTC()
	const query = `UPDATE checklist_items SET phase = :phase, task_name = :task_name, description = :description, due_date = :due_date, sort_order = :sort_order,
        completed = :completed, completed_at = :completed_at, completed_by = :completed_by, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("update checklist item: %w", err)
	}
	return ensureAffected(res)
}

// Delete removes one checklist item.
func (r *ChecklistRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM checklist_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete checklist item: %w", err)
	}
	return ensureAffected(res)
}
