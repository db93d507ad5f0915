package service

import (
	"time"

	"github.com/noah-isme/funeral-admin-api/internal/models"
)

type checklistTask struct {
	phase       models.ChecklistPhase
	name        string
	description string
	// offsetDays is relative to the event date; negative is before.
	offsetDays int
}

var defaultChecklist = []checklistTask{
	{models.PhasePreEvent, "Confirm venue booking", "Confirm the venue booking and access times with the venue", -7},
	{models.PhasePreEvent, "Order coffin", "Place the coffin order and confirm delivery", -5},
	{models.PhasePreEvent, "Arrange catering", "Confirm menu and head count with the caterer", -5},
	{models.PhasePreEvent, "Print funeral programs", "Proof and print the order of service", -3},
	{models.PhasePreEvent, "Book transport", "Book the hearse and family transport", -3},
	{models.PhasePreEvent, "Arrange seating", "Set out chairs and reserved family seating", -2},
	{models.PhasePreEvent, "Prepare graveside decor", "Set up the tent, flowers and lowering device", -1},
	{models.PhasePreEvent, "Final inspection", "Walk through the venue and graveside", -1},

	{models.PhaseDuringEvent, "Receive family", "Meet the family on arrival and guide them to their seats", 0},
	{models.PhaseDuringEvent, "Conduct ceremony", "Coordinate the service with the officiant", 0},
	{models.PhaseDuringEvent, "Supervise burial", "Oversee the procession and interment", 0},
	{models.PhaseDuringEvent, "Serve catering", "Coordinate the catering service after the burial", 0},
	{models.PhaseDuringEvent, "Manage guest book", "Keep the guest book and condolence cards safe", 0},

	{models.PhasePostEvent, "Venue cleanup", "Clear the venue and graveside", 0},
	{models.PhasePostEvent, "Return rentals", "Return tents, chairs and equipment", 1},
	{models.PhasePostEvent, "Family follow-up", "Call the family to check in", 3},
	{models.PhasePostEvent, "Complete documentation", "File the event records and invoices", 5},
	{models.PhasePostEvent, "Collect feedback", "Ask the family for feedback on the service", 7},
}

// BuildChecklist derives the default 18-task checklist for an event. Sort order restarts at
// one within each phase.
func BuildChecklist(eventID string, eventDate time.Time) []models.ChecklistItem {
	items := make([]models.ChecklistItem, 0, len(defaultChecklist))
	order := map[models.ChecklistPhase]int{}
	for _, task := range defaultChecklist {
		order[task.phase]++
		due := eventDate.AddDate(0, 0, task.offsetDays)
		description := task.description
		items = append(items, models.ChecklistItem{
			EventID:     eventID,
			Phase:       task.phase,
			TaskName:    task.name,
			Description: &description,
			DueDate:     &due,
			SortOrder:   order[task.phase],
		})
	}
	return items
}
