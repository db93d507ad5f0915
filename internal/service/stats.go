package service

import (
	"time"

	"github.com/noah-isme/funeral-admin-api/internal/dto"
	"github.com/noah-isme/funeral-admin-api/internal/models"
)

// MemberStatsOf counts members by status and tier.
func MemberStatsOf(members []models.Member) dto.MemberStats {
	stats := dto.MemberStats{Total: len(members)}
	for _, m := range members {
		switch m.Status {
		case models.MemberStatusActive:
			stats.Active++
		case models.MemberStatusSuspended:
			stats.Suspended++
		case models.MemberStatusCancelled:
			stats.Cancelled++
		}
		switch m.PolicyTier {
		case models.TierBronze:
			stats.Bronze++
		case models.TierSilver:
			stats.Silver++
		case models.TierGold:
			stats.Gold++
		}
	}
	return stats
}

// EventStatsOf counts events by status and those dated in now's calendar month.
func EventStatsOf(events []models.BurialEvent, now time.Time) dto.EventStats {
	stats := dto.EventStats{Total: len(events)}
	year, month, _ := now.Date()
	for _, e := range events {
		switch e.Status {
		case models.EventStatusScheduled:
			stats.Scheduled++
		case models.EventStatusInProgress:
			stats.InProgress++
		case models.EventStatusCompleted:
			stats.Completed++
		case models.EventStatusCancelled:
			stats.Cancelled++
		}
		// event dates are calendar dates; compare them as stored
		if y, m, _ := e.EventDate.Date(); y == year && m == month {
			stats.ThisMonth++
		}
	}
	return stats
}

// ClaimStatsOf counts claims by status, sums every claim amount and averages processing time
// over claims that have a processed date.
func ClaimStatsOf(claims []models.Claim) dto.ClaimStats {
	stats := dto.ClaimStats{Total: len(claims)}
	var processedDays float64
	var processed int
	for _, c := range claims {
		switch c.Status {
		case models.ClaimStatusNew:
			stats.New++
		case models.ClaimStatusProcessing:
			stats.Processing++
		case models.ClaimStatusApproved:
			stats.Approved++
		case models.ClaimStatusRejected:
			stats.Rejected++
		}
		stats.TotalAmount += c.Amount
		if c.ProcessedDate != nil && !c.SubmittedDate.IsZero() {
			processedDays += c.ProcessedDate.Sub(c.SubmittedDate).Hours() / 24
			processed++
		}
	}
	if processed > 0 {
		stats.AvgProcessingDays = round1(processedDays / float64(processed))
	}
	return stats
}

// StaffStatsOf counts staff by status and averages completion rates.
func StaffStatsOf(staff []models.Staff) dto.StaffStats {
	stats := dto.StaffStats{Total: len(staff)}
	var rateSum float64
	for _, s := range staff {
		switch s.Status {
		case models.StaffStatusAvailable:
			stats.Available++
		case models.StaffStatusOnAssignment:
			stats.OnAssignment++
		case models.StaffStatusOffDuty:
			stats.OffDuty++
		}
		rateSum += s.CompletionRate
	}
	if len(staff) > 0 {
		stats.AvgCompletionRate = round1(rateSum / float64(len(staff)))
	}
	return stats
}

// ContactStatsOf counts contacts by type.
func ContactStatsOf(contacts []models.Contact) dto.ContactStats {
	stats := dto.ContactStats{Total: len(contacts)}
	for _, c := range contacts {
		switch c.Type {
		case models.ContactTypeMember:
			stats.Members++
		case models.ContactTypeAttendingMember:
			stats.AttendingMember++
		case models.ContactTypeStaff:
			stats.Staff++
		case models.ContactTypeSupplier:
			stats.Suppliers++
		}
	}
	return stats
}

// ChecklistStatsOf counts completed and overdue items. An item is overdue when it is open and
// its due date is before now.
func ChecklistStatsOf(items []models.ChecklistItem, now time.Time) dto.ChecklistStats {
	stats := dto.ChecklistStats{Total: len(items)}
	for _, item := range items {
		if item.Completed {
			stats.Completed++
			continue
		}
		if item.DueDate != nil && item.DueDate.Before(now) {
			stats.Overdue++
		}
	}
	if stats.Total > 0 {
		stats.CompletionRate = int(float64(stats.Completed)/float64(stats.Total)*100 + 0.5)
	}
	return stats
}
