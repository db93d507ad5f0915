package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/funeral-admin-api/internal/models"
)

const eventColumns = `id, event_number, member_id, deceased_name, event_date, event_time, location, status, manager_id, progress, notes, created_at, updated_at`

// EventSearchColumns are matched by the free-text event search.
var EventSearchColumns = []string{"event_number", "deceased_name", "location"}

// EventRepository manages burial events.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// List returns events matching the filter ordered by event date.
func (r *EventRepository) List(ctx context.Context, filter models.EventFilter) ([]models.BurialEvent, error) {
	w := newWhere()
	w.eq("status", string(filter.Status))
	w.eq("member_id", filter.MemberID)
	if filter.From != nil {
		w.cmp("event_date", ">=", *filter.From)
	}
	if filter.To != nil {
		w.cmp("event_date", "<=", *filter.To)
	}
	w.search(filter.Search, EventSearchColumns...)

	query := fmt.Sprintf("SELECT %s FROM burial_events %s ORDER BY event_date ASC, event_time ASC", eventColumns, w)
	events := make([]models.BurialEvent, 0)
	if err := r.db.SelectContext(ctx, &events, query, w.args...); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// FindByID fetches an event by ID.
func (r *EventRepository) FindByID(ctx context.Context, id string) (*models.BurialEvent, error) {
	query := fmt.Sprintf("SELECT %s FROM burial_events WHERE id = $1", eventColumns)
	var event models.BurialEvent
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		return nil, err
	}
	return &event, nil
}

// Create inserts a new event.
func (r *EventRepository) Create(ctx context.Context, event *models.BurialEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
	event.UpdatedAt = now
	const query = `INSERT INTO burial_events (id, event_number, member_id, deceased_name, event_date, event_time, location, status, manager_id, progress, notes, created_at, updated_at)
        VALUES (:id, :event_number, :member_id, :deceased_name, :event_date, :event_time, :location, :status, :manager_id, :progress, :notes, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// Update overwrites the mutable fields of an event.
func (r *EventRepository) Update(ctx context.Context, event *models.BurialEvent) error {
	event.UpdatedAt = time.Now().UTC()
	const query = `UPDATE burial_events SET member_id = :member_id, deceased_name = :deceased_name, event_date = :event_date, event_time = :event_time, location = :location,
        status = :status, manager_id = :manager_id, progress = :progress, notes = :notes, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, event)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return ensureAffected(res)
}

// UpdateStatus sets the event status.
func (r *EventRepository) UpdateStatus(ctx context.Context, id string, status models.EventStatus) error {
	const query = `UPDATE burial_events SET status = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update event status: %w", err)
	}
	return ensureAffected(res)
}

// Delete removes an event. Dependent rows are left to the store's foreign keys.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM burial_events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return ensureAffected(res)
}
