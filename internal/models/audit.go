package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Audit verbs recorded by the services.
const (
	AuditActionCreate       = "create"
	AuditActionUpdate       = "update"
	AuditActionDelete       = "delete"
	AuditActionStatusChange = "status_change"
	AuditActionApprove      = "approve"
	AuditActionReject       = "reject"
	AuditActionGenerate     = "generate_checklist"
	AuditActionAssign       = "assign_staff"
	AuditActionUnassign     = "unassign_staff"
	AuditActionUpload       = "upload"
	AuditActionOnboard      = "onboard"
)

// RecentAuditLimit caps the recent activity view.
const RecentAuditLimit = 100

// AuditLog is an append-only trail entry.
type AuditLog struct {
	ID         string         `db:"id" json:"id"`
	UserID     string         `db:"user_id" json:"user_id"`
	Action     string         `db:"action" json:"action"`
	EntityType string         `db:"entity_type" json:"entity_type"`
	EntityID   string         `db:"entity_id" json:"entity_id"`
	OldValues  types.JSONText `db:"old_values" json:"old_values,omitempty"`
	NewValues  types.JSONText `db:"new_values" json:"new_values,omitempty"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
}

// AuditFilter narrows audit listings.
type AuditFilter struct {
	UserID     string
	Action     string
	EntityType string
	EntityID   string
	Search     string
	Limit      int
}
