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

const entityChecklist = "checklist_item"

type checklistRepository interface {
	List(ctx context.Context, filter models.ChecklistFilter) ([]models.ChecklistItem, error)
	CountByEvent(ctx context.Context, eventID string) (int, error)
	FindByID(ctx context.Context, id string) (*models.ChecklistItem, error)
	CreateBatch(ctx context.Context, items []models.ChecklistItem) error
	Update(ctx context.Context, item *models.ChecklistItem) error
	Delete(ctx context.Context, id string) error
}

type checklistEventLookup interface {
	FindByID(ctx context.Context, id string) (*models.BurialEvent, error)
}

// UpdateChecklistItemRequest edits a checklist item.
type UpdateChecklistItemRequest struct {
	TaskName    *string                `json:"task_name" validate:"omitempty,min=1"`
	Description *string                `json:"description"`
	Phase       *models.ChecklistPhase `json:"phase" validate:"omitempty,oneof=pre_event during_event post_event"`
	DueDate     *time.Time             `json:"due_date"`
	SortOrder   *int                   `json:"sort_order" validate:"omitempty,gte=0"`
}

// ChecklistService generates and tracks event checklists.
type ChecklistService struct {
	repo      checklistRepository
	events    checklistEventLookup
	audit     auditRecorder
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewChecklistService constructs the checklist service.
func NewChecklistService(repo checklistRepository, events checklistEventLookup, audit auditRecorder, validate *validator.Validate, logger *zap.Logger) *ChecklistService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChecklistService{repo: repo, events: events, audit: auditOrNoop(audit), validator: validate, logger: logger, now: time.Now}
}

// List returns checklist items matching the filter.
func (s *ChecklistService) List(ctx context.Context, filter models.ChecklistFilter) ([]models.ChecklistItem, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list checklist items")
	}
	return items, nil
}

// Generate writes the default checklist for an event. An event that already has items is
// rejected with a conflict instead of receiving a duplicate set.
func (s *ChecklistService) Generate(ctx context.Context, eventID string) ([]models.ChecklistItem, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, loadError(err, entityEvent)
	}
	return s.generateFor(ctx, event)
}

func (s *ChecklistService) generateFor(ctx context.Context, event *models.BurialEvent) ([]models.ChecklistItem, error) {
	existing, err := s.repo.CountByEvent(ctx, event.ID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to check existing checklist")
	}
	if existing > 0 {
		return nil, appErrors.Clone(appErrors.ErrConflict, "checklist already generated for event")
	}

	items := BuildChecklist(event.ID, event.EventDate)
	if err := s.repo.CreateBatch(ctx, items); err != nil {
		return nil, appErrors.Internal(err, "failed to generate checklist")
	}
	s.audit.Log(ctx, models.AuditActionGenerate, entityEvent, event.ID, nil, map[string]int{"items": len(items)})
	return items, nil
}

// Toggle flips an item's completion, stamping or clearing who completed it and when.
func (s *ChecklistService) Toggle(ctx context.Context, id string) (*models.ChecklistItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, entityChecklist)
	}
	item.Completed = !item.Completed
	if item.Completed {
		now := s.now().UTC()
		item.CompletedAt = &now
		if actor := actorID(ctx); actor != "" {
			item.CompletedBy = &actor
		}
	} else {
		item.CompletedAt = nil
		item.CompletedBy = nil
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, writeError(err, "update", entityChecklist)
	}
	s.audit.Log(ctx, models.AuditActionUpdate, entityChecklist, id,
		map[string]bool{"completed": !item.Completed},
		map[string]bool{"completed": item.Completed})
	return item, nil
}

// Update edits an item's task fields.
func (s *ChecklistService) Update(ctx context.Context, id string, req UpdateChecklistItemRequest) (*models.ChecklistItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid checklist payload")
	}
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, entityChecklist)
	}
	before := *item
	if req.TaskName != nil {
		item.TaskName = strings.TrimSpace(*req.TaskName)
	}
	if req.Description != nil {
		item.Description = optionalString(req.Description)
	}
	if req.Phase != nil {
		item.Phase = *req.Phase
	}
	if req.DueDate != nil {
		item.DueDate = req.DueDate
	}
	if req.SortOrder != nil {
		item.SortOrder = *req.SortOrder
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, writeError(err, "update", entityChecklist)
	}
	s.audit.Log(ctx, models.AuditActionUpdate, entityChecklist, id, before, item)
	return item, nil
}

// Delete removes one checklist item.
func (s *ChecklistService) Delete(ctx context.Context, id string) error {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return loadError(err, entityChecklist)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "delete", entityChecklist)
	}
	s.audit.Log(ctx, models.AuditActionDelete, entityChecklist, id, item, nil)
	return nil
}

// Stats summarises every checklist item.
func (s *ChecklistService) Stats(ctx context.Context) (*dto.ChecklistStats, error) {
	items, err := s.repo.List(ctx, models.ChecklistFilter{})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load checklist stats")
	}
	stats := ChecklistStatsOf(items, s.now())
	return &stats, nil
}
