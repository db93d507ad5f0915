package models

import "time"

// StaffStatus is a staff member's availability.
type StaffStatus string

const (
	StaffStatusAvailable    StaffStatus = "available"
	StaffStatusOnAssignment StaffStatus = "on_assignment"
	StaffStatusOffDuty      StaffStatus = "off_duty"
)

// Staff is an employee who works burial events.
type Staff struct {
	ID             string      `db:"id" json:"id"`
	UserID         *string     `db:"user_id" json:"user_id,omitempty"`
	EmployeeNumber string      `db:"employee_number" json:"employee_number"`
	FirstName      string      `db:"first_name" json:"first_name"`
	LastName       string      `db:"last_name" json:"last_name"`
	Phone          string      `db:"phone" json:"phone"`
	Email          *string     `db:"email" json:"email,omitempty"`
	Role           string      `db:"role" json:"role"`
	Status         StaffStatus `db:"status" json:"status"`
	CompletionRate float64     `db:"completion_rate" json:"completion_rate"`
	CreatedAt      time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time   `db:"updated_at" json:"updated_at"`
}

// FullName joins the staff member's names.
func (s Staff) FullName() string {
	return joinName(s.FirstName, s.LastName)
}

// StaffFilter narrows staff listings.
type StaffFilter struct {
	Search string
	Status StaffStatus
	Role   string
	UserID string
}
