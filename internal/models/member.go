package models

import "time"

// PolicyTier is a member's policy level.
type PolicyTier string

const (
	TierBronze PolicyTier = "bronze"
	TierSilver PolicyTier = "silver"
	TierGold   PolicyTier = "gold"
)

// CoverAmount returns the default cover for the tier in rand.
func (t PolicyTier) CoverAmount() float64 {
	switch t {
	case TierBronze:
		return 15000
	case TierSilver:
		return 20000
	case TierGold:
		return 25000
	}
	return 0
}

// MemberStatus tracks the membership lifecycle.
type MemberStatus string

const (
	MemberStatusActive    MemberStatus = "active"
	MemberStatusSuspended MemberStatus = "suspended"
	MemberStatusCancelled MemberStatus = "cancelled"
)

// Member is a policy holder.
type Member struct {
	ID           string       `db:"id" json:"id"`
	MemberNumber string       `db:"member_number" json:"member_number"`
	FirstName    string       `db:"first_name" json:"first_name"`
	LastName     string       `db:"last_name" json:"last_name"`
	IDNumber     string       `db:"id_number" json:"id_number"`
	Phone        string       `db:"phone" json:"phone"`
	Email        *string      `db:"email" json:"email,omitempty"`
	Address      *string      `db:"address" json:"address,omitempty"`
	PolicyTier   PolicyTier   `db:"policy_tier" json:"policy_tier"`
	CoverAmount  float64      `db:"cover_amount" json:"cover_amount"`
	Status       MemberStatus `db:"status" json:"status"`
	JoinedDate   time.Time    `db:"joined_date" json:"joined_date"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}

// FullName joins the member's names.
func (m Member) FullName() string {
	return joinName(m.FirstName, m.LastName)
}

// MemberFilter encapsulates allowed search parameters for listing members.
type MemberFilter struct {
	Search string
	Status MemberStatus
	Tier   PolicyTier
}
