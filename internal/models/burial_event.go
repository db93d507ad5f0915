package models

import "time"

// EventStatus tracks a burial event.
type EventStatus string

const (
	EventStatusScheduled  EventStatus = "scheduled"
	EventStatusInProgress EventStatus = "in_progress"
	EventStatusCompleted  EventStatus = "completed"
	EventStatusCancelled  EventStatus = "cancelled"
)

// BurialEvent is a scheduled funeral.
type BurialEvent struct {
	ID           string      `db:"id" json:"id"`
	EventNumber  string      `db:"event_number" json:"event_number"`
	MemberID     *string     `db:"member_id" json:"member_id,omitempty"`
	DeceasedName string      `db:"deceased_name" json:"deceased_name"`
	EventDate    time.Time   `db:"event_date" json:"event_date"`
	EventTime    string      `db:"event_time" json:"event_time"`
	Location     string      `db:"location" json:"location"`
	Status       EventStatus `db:"status" json:"status"`
	ManagerID    *string     `db:"manager_id" json:"manager_id,omitempty"`
	Progress     int         `db:"progress" json:"progress"`
	Notes        *string     `db:"notes" json:"notes,omitempty"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
}

// EventFilter narrows event listings.
type EventFilter struct {
	Search   string
	Status   EventStatus
	MemberID string
	From     *time.Time
	To       *time.Time
}

// EventStaffAssignment joins staff to an event.
type EventStaffAssignment struct {
	ID         string    `db:"id" json:"id"`
	EventID    string    `db:"event_id" json:"event_id"`
	StaffID    string    `db:"staff_id" json:"staff_id"`
	AssignedAt time.Time `db:"assigned_at" json:"assigned_at"`
}
