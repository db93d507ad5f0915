package models

import "time"

// ClaimStatus follows new -> processing -> approved|rejected.
type ClaimStatus string

const (
	ClaimStatusNew        ClaimStatus = "new"
	ClaimStatusProcessing ClaimStatus = "processing"
	ClaimStatusApproved   ClaimStatus = "approved"
	ClaimStatusRejected   ClaimStatus = "rejected"
)

// CanTransitionTo reports whether the claim state machine allows moving to next.
func (s ClaimStatus) CanTransitionTo(next ClaimStatus) bool {
	switch s {
	case ClaimStatusNew:
		return next == ClaimStatusProcessing || next == ClaimStatusApproved || next == ClaimStatusRejected
	case ClaimStatusProcessing:
		return next == ClaimStatusApproved || next == ClaimStatusRejected
	}
	return false
}

// Claim is a payout request against a member's cover.
type Claim struct {
	ID                string      `db:"id" json:"id"`
	ClaimNumber       string      `db:"claim_number" json:"claim_number"`
	MemberID          string      `db:"member_id" json:"member_id"`
	AttendingMemberID *string     `db:"attending_member_id" json:"attending_member_id,omitempty"`
	DeceasedName      string      `db:"deceased_name" json:"deceased_name"`
	Amount            float64     `db:"amount" json:"amount"`
	Status            ClaimStatus `db:"status" json:"status"`
	SubmittedDate     time.Time   `db:"submitted_date" json:"submitted_date"`
	ProcessedDate     *time.Time  `db:"processed_date" json:"processed_date,omitempty"`
	ProcessedBy       *string     `db:"processed_by" json:"processed_by,omitempty"`
	Notes             *string     `db:"notes" json:"notes,omitempty"`
	CreatedAt         time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time   `db:"updated_at" json:"updated_at"`
}

// ClaimFilter narrows claim listings.
type ClaimFilter struct {
	Search   string
	Status   ClaimStatus
	MemberID string
}
