package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/funeral-admin-api/internal/models"
	appErrors "github.com/noah-isme/funeral-admin-api/pkg/errors"
)

type viewStateStore interface {
	Get(ctx context.Context, userID string) (*models.ViewState, error)
	Save(ctx context.Context, userID string, state *models.ViewState) error
	Delete(ctx context.Context, userID string) error
}

// SelectionMode says how a selection request changes the stored selection.
type SelectionMode string

const (
	SelectionAdd    SelectionMode = "add"
	SelectionRemove SelectionMode = "remove"
	SelectionSet    SelectionMode = "set"
	SelectionClear  SelectionMode = "clear"
)

// SelectionRequest edits the selected ids of the current tab.
type SelectionRequest struct {
	Mode SelectionMode `json:"mode" validate:"required,oneof=add remove set clear"`
	IDs  []string      `json:"ids"`
}

// ViewStateService owns each user's admin view. The store is optional; without it every
// request starts from defaults.
type ViewStateService struct {
	store     viewStateStore
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewViewStateService constructs the view state service. store may be nil.
func NewViewStateService(store viewStateStore, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ViewStateService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ViewStateService{store: store, metrics: metrics, validator: validate, logger: logger, now: time.Now}
}

// Get returns the stored view, or the members tab defaults.
func (s *ViewStateService) Get(ctx context.Context, userID string) models.ViewState {
	if state := s.load(ctx, userID); state != nil {
		return *state
	}
	return models.NewViewState(models.MembersTab{})
}

// Sync brings the stored view onto tab and applies update. Moving to another tab starts from
// that tab's defaults.
func (s *ViewStateService) Sync(ctx context.Context, userID string, tab models.Tab, update models.ViewStateUpdate) (models.ViewState, error) {
	if err := s.validator.Struct(update); err != nil {
		return models.ViewState{}, validationError(err, "invalid view parameters")
	}
	state := s.forTab(ctx, userID, tab)
	state.Apply(update)
	s.save(ctx, userID, &state)
	return state, nil
}

// SwitchTab resets the view to the defaults of tab.
func (s *ViewStateService) SwitchTab(ctx context.Context, userID string, tab models.Tab) models.ViewState {
	state := models.NewViewState(tab)
	s.save(ctx, userID, &state)
	return state
}

// UpdateSelection edits the selection on tab.
func (s *ViewStateService) UpdateSelection(ctx context.Context, userID string, tab models.Tab, req SelectionRequest) (models.ViewState, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.ViewState{}, validationError(err, "invalid selection")
	}
	state := s.forTab(ctx, userID, tab)
	switch req.Mode {
	case SelectionAdd:
		state.Select(req.IDs...)
	case SelectionRemove:
		state.Deselect(req.IDs...)
	case SelectionSet:
		state.ClearSelection()
		state.Select(req.IDs...)
	case SelectionClear:
		state.ClearSelection()
	}
	s.save(ctx, userID, &state)
	return state, nil
}

// ClearSelection empties the stored selection, keeping the rest of the view.
func (s *ViewStateService) ClearSelection(ctx context.Context, userID string) {
	state := s.load(ctx, userID)
	if state == nil || len(state.Selected) == 0 {
		return
	}
	state.ClearSelection()
	s.save(ctx, userID, state)
}

// Reset forgets the stored view.
func (s *ViewStateService) Reset(ctx context.Context, userID string) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Delete(ctx, userID); err != nil {
		return appErrors.Internal(err, "failed to reset view state")
	}
	return nil
}

func (s *ViewStateService) forTab(ctx context.Context, userID string, tab models.Tab) models.ViewState {
	state := s.load(ctx, userID)
	if state == nil || state.Tab != tab.Name() {
		return models.NewViewState(tab)
	}
	if state.Selected == nil {
		state.Selected = []string{}
	}
	return *state
}

func (s *ViewStateService) load(ctx context.Context, userID string) *models.ViewState {
	if s.store == nil || userID == "" {
		return nil
	}
	started := time.Now()
	state, err := s.store.Get(ctx, userID)
	s.metrics.RecordViewStateLookup(err == nil, time.Since(started))
	if err != nil {
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("view state unavailable", zap.String("user_id", userID), zap.Error(err))
		}
		return nil
	}
	if _, ok := models.ParseTab(state.Tab); !ok {
		return nil
	}
	return state
}

func (s *ViewStateService) save(ctx context.Context, userID string, state *models.ViewState) {
	state.UpdatedAt = s.now().UTC()
	if s.store == nil || userID == "" {
		return
	}
	if err := s.store.Save(ctx, userID, state); err != nil {
		s.logger.Warn("failed to persist view state", zap.String("user_id", userID), zap.Error(err))
	}
}
