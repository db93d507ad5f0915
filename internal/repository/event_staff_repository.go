package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/funeral-admin-api/internal/models"
)

// EventStaffRepository manages the event/staff join table.
type EventStaffRepository struct {
	db *sqlx.DB
}

// NewEventStaffRepository constructs an EventStaffRepository.
func NewEventStaffRepository(db *sqlx.DB) *EventStaffRepository {
	return &EventStaffRepository{db: db}
}

// ListByEvent returns the staff assigned to an event, earliest first.
func (r *EventStaffRepository) ListByEvent(ctx context.Context, eventID string) ([]models.EventStaffAssignment, error) {
	const query = `SELECT id, event_id, staff_id, assigned_at FROM event_staff_assignments WHERE event_id = $1 ORDER BY assigned_at ASC`
	assignments := make([]models.EventStaffAssignment, 0)
	if err := r.db.SelectContext(ctx, &assignments, query, eventID); err != nil {
		return nil, fmt.Errorf("list event staff: %w", err)
	}
	return assignments, nil
}

// Exists reports whether the staff member is already assigned to the event.
func (r *EventStaffRepository) Exists(ctx context.Context, eventID, staffID string) (bool, error) {
	const query = `SELECT COUNT(1) FROM event_staff_assignments WHERE event_id = $1 AND staff_id = $2`
	var count int
	if err := r.db.GetContext(ctx, &count, query, eventID, staffID); err != nil {
		return false, fmt.Errorf("check event staff: %w", err)
	}
	return count > 0, nil
}

// Assign links a staff member to an event.
func (r *EventStaffRepository) Assign(ctx context.Context, assignment *models.EventStaffAssignment) error {
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	if assignment.AssignedAt.IsZero() {
		assignment.AssignedAt = time.Now().UTC()
	}
	const query = `INSERT INTO event_staff_assignments (id, event_id, staff_id, assigned_at) VALUES (:id, :event_id, :staff_id, :assigned_at)`
	if _, err := r.db.NamedExecContext(ctx, query, assignment); err != nil {
		return fmt.Errorf("assign staff: %w", err)
	}
	return nil
}

// Unassign removes a staff member from an event.
func (r *EventStaffRepository) Unassign(ctx context.Context, eventID, staffID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM event_staff_assignments WHERE event_id = $1 AND staff_id = $2`, eventID, staffID)
	if err != nil {
		return fmt.Errorf("unassign staff: %w", err)
	}
	return ensureAffected(res)
}
