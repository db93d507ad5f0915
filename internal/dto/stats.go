package dto

import "time"

// MemberStats breaks members down by status and tier.
type MemberStats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Suspended int `json:"suspended"`
	Cancelled int `json:"cancelled"`
	Bronze    int `json:"bronze"`
	Silver    int `json:"silver"`
	Gold      int `json:"gold"`
}

// EventStats breaks events down by status.
type EventStats struct {
	Total      int `json:"total"`
	Scheduled  int `json:"scheduled"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
	ThisMonth  int `json:"this_month"`
}

// ClaimStats breaks claims down by status. AvgProcessingDays only counts processed claims.
type ClaimStats struct {
	Total             int     `json:"total"`
	New               int     `json:"new"`
	Processing        int     `json:"processing"`
	Approved          int     `json:"approved"`
	Rejected          int     `json:"rejected"`
	TotalAmount       float64 `json:"total_amount"`
	AvgProcessingDays float64 `json:"avg_processing_days"`
}

// StaffStats breaks staff down by availability.
type StaffStats struct {
	Total             int     `json:"total"`
	Available         int     `json:"available"`
	OnAssignment      int     `json:"on_assignment"`
	OffDuty           int     `json:"off_duty"`
	AvgCompletionRate float64 `json:"avg_completion_rate"`
}

// ContactStats breaks contacts down by type.
type ContactStats struct {
	Total           int `json:"total"`
	Members         int `json:"members"`
	AttendingMember int `json:"attending_members"`
	Staff           int `json:"staff"`
	Suppliers       int `json:"suppliers"`
}

// ChecklistStats summarises checklist progress. CompletionRate is a whole percentage.
type ChecklistStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Overdue        int `json:"overdue"`
	CompletionRate int `json:"completion_rate"`
}

// DashboardStats is the whole-system summary.
type DashboardStats struct {
	Members     MemberStats    `json:"members"`
	Events      EventStats     `json:"events"`
	Claims      ClaimStats     `json:"claims"`
	Staff       StaffStats     `json:"staff"`
	Contacts    ContactStats   `json:"contacts"`
	Checklists  ChecklistStats `json:"checklists"`
	Revenue     float64        `json:"revenue"`
	GeneratedAt time.Time      `json:"generated_at"`
}
