package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/funeral-admin-api/internal/dto"
	"github.com/noah-isme/funeral-admin-api/internal/models"
	appErrors "github.com/noah-isme/funeral-admin-api/pkg/errors"
)

const entityEvent = "burial_event"

type eventRepository interface {
	List(ctx context.Context, filter models.EventFilter) ([]models.BurialEvent, error)
	FindByID(ctx context.Context, id string) (*models.BurialEvent, error)
	Create(ctx context.Context, event *models.BurialEvent) error
	Update(ctx context.Context, event *models.BurialEvent) error
	UpdateStatus(ctx context.Context, id string, status models.EventStatus) error
	Delete(ctx context.Context, id string) error
}

type eventStaffRepository interface {
	ListByEvent(ctx context.Context, eventID string) ([]models.EventStaffAssignment, error)
	Exists(ctx context.Context, eventID, staffID string) (bool, error)
	Assign(ctx context.Context, assignment *models.EventStaffAssignment) error
	Unassign(ctx context.Context, eventID, staffID string) error
}

type staffLookup interface {
	FindByID(ctx context.Context, id string) (*models.Staff, error)
}

type checklistGenerator interface {
	generateFor(ctx context.Context, event *models.BurialEvent) ([]models.ChecklistItem, error)
}

// CreateEventRequest holds the payload for scheduling an event.
type CreateEventRequest struct {
	MemberID          *string            `json:"member_id"`
	DeceasedName      string             `json:"deceased_name" validate:"required"`
	EventDate         time.Time          `json:"event_date" validate:"required"`
	EventTime         string             `json:"event_time" validate:"required"`
	Location          string             `json:"location" validate:"required"`
	Status            models.EventStatus `json:"status" validate:"omitempty,oneof=scheduled in_progress completed cancelled"`
	ManagerID         *string            `json:"manager_id"`
	Progress          int                `json:"progress" validate:"gte=0,lte=100"`
	Notes             *string            `json:"notes"`
	GenerateChecklist bool               `json:"generate_checklist"`
}

// UpdateEventRequest carries a partial event update.
type UpdateEventRequest struct {
	MemberID     *string             `json:"member_id"`
	DeceasedName *string             `json:"deceased_name" validate:"omitempty,min=1"`
	EventDate    *time.Time          `json:"event_date"`
	EventTime    *string             `json:"event_time"`
	Location     *string             `json:"location" validate:"omitempty,min=1"`
	Status       *models.EventStatus `json:"status" validate:"omitempty,oneof=scheduled in_progress completed cancelled"`
	ManagerID    *string             `json:"manager_id"`
	Progress     *int                `json:"progress" validate:"omitempty,gte=0,lte=100"`
	Notes        *string             `json:"notes"`
}

// AssignStaffRequest links staff to an event.
type AssignStaffRequest struct {
	StaffID string `json:"staff_id" validate:"required"`
}

// EventService handles burial event use-cases.
type EventService struct {
	repo        eventRepository
	assignments eventStaffRepository
	staff       staffLookup
	checklists  checklistGenerator
	audit       auditRecorder
	validator   *validator.Validate
	logger      *zap.Logger
	now         func() time.Time
}

// NewEventService constructs the event service. checklists may be nil when generation on
// create is not wired.
func NewEventService(repo eventRepository, assignments eventStaffRepository, staff staffLookup, checklists *ChecklistService, audit auditRecorder, validate *validator.Validate, logger *zap.Logger) *EventService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &EventService{repo: repo, assignments: assignments, staff: staff, audit: auditOrNoop(audit), validator: validate, logger: logger, now: time.Now}
	if checklists != nil {
		svc.checklists = checklists
	}
	return svc
}

// List returns every event matching the filter.
func (s *EventService) List(ctx context.Context, filter models.EventFilter) ([]models.BurialEvent, error) {
	events, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list events")
	}
	return events, nil
}

// Get returns an event by ID.
func (s *EventService) Get(ctx context.Context, id string) (*models.BurialEvent, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, entityEvent)
	}
	return event, nil
}

// Create schedules an event and optionally generates its checklist.
func (s *EventService) Create(ctx context.Context, req CreateEventRequest) (*models.BurialEvent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid event payload")
	}
	event := &models.BurialEvent{
		EventNumber:  generateNumber(EventNumberPrefix, s.now()),
		MemberID:     optionalString(req.MemberID),
		DeceasedName: strings.TrimSpace(req.DeceasedName),
		EventDate:    req.EventDate,
		EventTime:    strings.TrimSpace(req.EventTime),
		Location:     strings.TrimSpace(req.Location),
		Status:       req.Status,
		ManagerID:    optionalString(req.ManagerID),
		Progress:     req.Progress,
		Notes:        optionalString(req.Notes),
	}
	if event.Status == "" {
		event.Status = models.EventStatusScheduled
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, appErrors.Internal(err, "failed to create event")
	}
	s.audit.Log(ctx, models.AuditActionCreate, entityEvent, event.ID, nil, event)

	if req.GenerateChecklist && s.checklists != nil {
		if _, err := s.checklists.generateFor(ctx, event); err != nil {
			return event, err
		}
	}
	return event, nil
}

// Update applies a partial update. Progress is set manually and never derived.
func (s *EventService) Update(ctx context.Context, id string, req UpdateEventRequest) (*models.BurialEvent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid event payload")
	}
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, entityEvent)
	}
	before := *event

	if req.MemberID != nil {
		event.MemberID = optionalString(req.MemberID)
	}
	if req.DeceasedName != nil {
		event.DeceasedName = strings.TrimSpace(*req.DeceasedName)
	}
	if req.EventDate != nil {
		event.EventDate = *req.EventDate
	}
	if req.EventTime != nil {
		event.EventTime = strings.TrimSpace(*req.EventTime)
	}
	if req.Location != nil {
		event.Location = strings.TrimSpace(*req.Location)
	}
	if req.Status != nil {
		event.Status = *req.Status
	}
	if req.ManagerID != nil {
		event.ManagerID = optionalString(req.ManagerID)
	}
	if req.Progress != nil {
		event.Progress = *req.Progress
	}
	if req.Notes != nil {
		event.Notes = optionalString(req.Notes)
	}

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, writeError(err, "update", entityEvent)
	}
	s.audit.Log(ctx, models.AuditActionUpdate, entityEvent, id, before, event)
	return event, nil
}

// SetStatus moves an event to a new status.
func (s *EventService) SetStatus(ctx context.Context, id string, status models.EventStatus) error {
	switch status {
	case models.EventStatusScheduled, models.EventStatusInProgress, models.EventStatusCompleted, models.EventStatusCancelled:
	default:
		return appErrors.Clone(appErrors.ErrValidation, "invalid event status")
	}
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return loadError(err, entityEvent)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return writeError(err, "update", entityEvent)
	}
	s.audit.Log(ctx, models.AuditActionStatusChange, entityEvent, id,
		map[string]string{"status": string(event.Status)},
		map[string]string{"status": string(status)})
	return nil
}

// Delete removes an event.
func (s *EventService) Delete(ctx context.Context, id string) error {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return loadError(err, entityEvent)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "delete", entityEvent)
	}
	s.audit.Log(ctx, models.AuditActionDelete, entityEvent, id, event, nil)
	return nil
}

// ListStaff returns the staff assignments of an event.
func (s *EventService) ListStaff(ctx context.Context, eventID string) ([]models.EventStaffAssignment, error) {
	if _, err := s.repo.FindByID(ctx, eventID); err != nil {
		return nil, loadError(err, entityEvent)
	}
	assignments, err := s.assignments.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list event staff")
	}
	return assignments, nil
}

// AssignStaff links a staff member to an event once.
func (s *EventService) AssignStaff(ctx context.Context, eventID string, req AssignStaffRequest) (*models.EventStaffAssignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid assignment payload")
	}
	if _, err := s.repo.FindByID(ctx, eventID); err != nil {
		return nil, loadError(err, entityEvent)
	}
	if _, err := s.staff.FindByID(ctx, req.StaffID); err != nil {
		return nil, loadError(err, entityStaff)
	}
	exists, err := s.assignments.Exists(ctx, eventID, req.StaffID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to check assignment")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "staff already assigned to event")
	}
	assignment := &models.EventStaffAssignment{EventID: eventID, StaffID: req.StaffID}
	if err := s.assignments.Assign(ctx, assignment); err != nil {
		return nil, appErrors.Internal(err, "failed to assign staff")
	}
	s.audit.Log(ctx, models.AuditActionAssign, entityEvent, eventID, nil, assignment)
	return assignment, nil
}

// UnassignStaff removes a staff member from an event.
func (s *EventService) UnassignStaff(ctx context.Context, eventID, staffID string) error {
	if err := s.assignments.Unassign(ctx, eventID, staffID); err != nil {
		return writeError(err, "remove", "assignment")
	}
	s.audit.Log(ctx, models.AuditActionUnassign, entityEvent, eventID, map[string]string{"staff_id": staffID}, nil)
	return nil
}

// Stats summarises all events.
func (s *EventService) Stats(ctx context.Context) (*dto.EventStats, error) {
	events, err := s.repo.List(ctx, models.EventFilter{})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load event stats")
	}
	stats := EventStatsOf(events, s.now())
	return &stats, nil
}
