package models

import "time"

// ChecklistPhase buckets a task relative to the event date.
type ChecklistPhase string

const (
	PhasePreEvent    ChecklistPhase = "pre_event"
	PhaseDuringEvent ChecklistPhase = "during_event"
	PhasePostEvent   ChecklistPhase = "post_event"
)

// ChecklistItem is one task in an event's checklist.
type ChecklistItem struct {
	ID          string         `db:"id" json:"id"`
	EventID     string         `db:"event_id" json:"event_id"`
	Phase       ChecklistPhase `db:"phase" json:"phase"`
	TaskName    string         `db:"task_name" json:"task_name"`
	Description *string        `db:"description" json:"description,omitempty"`
	DueDate     *time.Time     `db:"due_date" json:"due_date,omitempty"`
	SortOrder   int            `db:"sort_order" json:"sort_order"`
	Completed   bool           `db:"completed" json:"completed"`
	CompletedAt *time.Time     `db:"completed_at" json:"completed_at,omitempty"`
	CompletedBy *string        `db:"completed_by" json:"completed_by,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// ChecklistFilter narrows checklist listings.
type ChecklistFilter struct {
	EventID   string
	Phase     ChecklistPhase
	Completed *bool
}
