package models

import "time"

// ContactType classifies a directory entry.
type ContactType string

const (
	ContactTypeMember          ContactType = "member"
	ContactTypeAttendingMember ContactType = "attending_member"
	ContactTypeStaff           ContactType = "staff"
	ContactTypeSupplier        ContactType = "supplier"
)

// Contact is a directory entry over members, staff and suppliers.
type Contact struct {
	ID               string      `db:"id" json:"id"`
	Name             string      `db:"name" json:"name"`
	Type             ContactType `db:"type" json:"type"`
	Relationship     *string     `db:"relationship" json:"relationship,omitempty"`
	Phone            string      `db:"phone" json:"phone"`
	Email            *string     `db:"email" json:"email,omitempty"`
	Address          *string     `db:"address" json:"address,omitempty"`
	AssociatedEvents int         `db:"associated_events" json:"associated_events"`
	CreatedAt        time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time   `db:"updated_at" json:"updated_at"`
}

// ContactFilter narrows contact listings.
type ContactFilter struct {
	Search string
	Type   ContactType
}
