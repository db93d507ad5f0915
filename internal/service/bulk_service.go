package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/funeral-admin-api/internal/dto"
	"github.com/noah-isme/funeral-admin-api/internal/models"
	appErrors "github.com/noah-isme/funeral-admin-api/pkg/errors"
)

// Bulk action names accepted per tab.
const (
	BulkActionDelete       = "delete"
	BulkActionActivate     = "activate"
	BulkActionSuspend      = "suspend"
	BulkActionCancel       = "cancel"
	BulkActionApprove      = "approve"
	BulkActionReject       = "reject"
	BulkActionComplete     = "complete"
	BulkActionAvailable    = "available"
	BulkActionOnAssignment = "on_assignment"
	BulkActionOffDuty      = "off_duty"
)

type bulkMembers interface {
	SetStatus(ctx context.Context, id string, status models.MemberStatus) error
	Delete(ctx context.Context, id string) error
}

type bulkEvents interface {
	SetStatus(ctx context.Context, id string, status models.EventStatus) error
	Delete(ctx context.Context, id string) error
}

type bulkStaff interface {
	SetStatus(ctx context.Context, id string, status models.StaffStatus) error
	Delete(ctx context.Context, id string) error
}

type bulkClaims interface {
	Approve(ctx context.Context, id, processorID string) (*models.Claim, error)
	Reject(ctx context.Context, id, processorID, note string) (*models.Claim, error)
	Delete(ctx context.Context, id string) error
}

type dashboardStatsProvider interface {
	Stats(ctx context.Context) (*dto.DashboardStats, error)
}

// BulkServiceParams groups constructor dependencies.
type BulkServiceParams struct {
	Members    bulkMembers
	Events     bulkEvents
	Staff      bulkStaff
	Claims     bulkClaims
	Dashboard  dashboardStatsProvider
	ViewStates *ViewStateService
	Metrics    *MetricsService
	Logger     *zap.Logger
}

// BulkService applies one action to a selection of ids on a tab.
type BulkService struct {
	members    bulkMembers
	events     bulkEvents
	staff      bulkStaff
	claims     bulkClaims
	dashboard  dashboardStatsProvider
	viewStates *ViewStateService
	metrics    *MetricsService
	logger     *zap.Logger
}

// NewBulkService constructs the bulk coordinator.
func NewBulkService(params BulkServiceParams) *BulkService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BulkService{
		members:    params.Members,
		events:     params.Events,
		staff:      params.Staff,
		claims:     params.Claims,
		dashboard:  params.Dashboard,
		viewStates: params.ViewStates,
		metrics:    params.Metrics,
		logger:     logger,
	}
}

// Execute runs action over ids one at a time. The first failure stops the run: earlier
// mutations stay applied and the remaining ids are reported as skipped. Afterwards the
// caller's selection is cleared and fresh dashboard stats are attached.
func (s *BulkService) Execute(ctx context.Context, tab models.Tab, req dto.BulkActionRequest) (*dto.BulkResult, error) {
	ids := uniqueIDs(req.IDs)
	if len(ids) == 0 {
		return nil, appErrors.ErrEmptySelection
	}
	action := strings.ToLower(strings.TrimSpace(req.Action))

	plan := &bulkPlan{svc: s, action: action}
	if err := tab.Dispatch(plan); err != nil {
		return nil, err
	}

	actor := actorID(ctx)
	if plan.needsActor && actor == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, action+" requires an authenticated processor")
	}
	result := &dto.BulkResult{
		Tab:     tab.Name(),
		Action:  action,
		Results: make([]dto.BulkItemResult, 0, len(ids)),
	}
	for i, id := range ids {
		if err := plan.apply(ctx, id, actor); err != nil {
			appErr := appErrors.FromError(err)
			result.Results = append(result.Results, dto.BulkItemResult{ID: id, Status: dto.BulkItemFailed, Error: appErr.Message})
			result.Failed++
			for _, rest := range ids[i+1:] {
				result.Results = append(result.Results, dto.BulkItemResult{ID: rest, Status: dto.BulkItemSkipped})
				result.Skipped++
			}
			result.Aborted = true
			result.Message = fmt.Sprintf("%s stopped at %s: %s", action, id, appErr.Message)
			s.logger.Warn("bulk action aborted",
				zap.String("tab", tab.Name()),
				zap.String("action", action),
				zap.String("id", id),
				zap.Int("succeeded", result.Succeeded),
				zap.Error(err),
			)
			break
		}
		result.Results = append(result.Results, dto.BulkItemResult{ID: id, Status: dto.BulkItemSucceeded})
		result.Succeeded++
	}
	if !result.Aborted {
		result.Message = fmt.Sprintf("%s applied to %d item(s)", action, result.Succeeded)
	}
	s.metrics.RecordBulkOutcome(tab.Name(), action, result)

	if s.viewStates != nil {
		s.viewStates.ClearSelection(ctx, actor)
	}
	if s.dashboard != nil {
		stats, err := s.dashboard.Stats(ctx)
		if err != nil {
			s.logger.Warn("failed to refresh stats after bulk action", zap.Error(err))
		} else {
			result.Stats = stats
		}
	}
	return result, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// bulkPlan resolves the per-id operation for a tab before anything runs.
type bulkPlan struct {
	svc        *BulkService
	action     string
	needsActor bool
	apply      func(ctx context.Context, id, actor string) error
}

func (p *bulkPlan) unsupported(tab string) error {
	return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported bulk action %q for %s", p.action, tab))
}

func (p *bulkPlan) Members() error {
	members := p.svc.members
	status := map[string]models.MemberStatus{
		BulkActionActivate: models.MemberStatusActive,
		BulkActionSuspend:  models.MemberStatusSuspended,
		BulkActionCancel:   models.MemberStatusCancelled,
	}
	switch {
	case p.action == BulkActionDelete:
		p.apply = func(ctx context.Context, id, _ string) error { return members.Delete(ctx, id) }
	case status[p.action] != "":
		next := status[p.action]
		p.apply = func(ctx context.Context, id, _ string) error { return members.SetStatus(ctx, id, next) }
	default:
		return p.unsupported("members")
	}
	return nil
}

func (p *bulkPlan) Events() error {
	events := p.svc.events
	switch p.action {
	case BulkActionDelete:
		p.apply = func(ctx context.Context, id, _ string) error { return events.Delete(ctx, id) }
	case BulkActionComplete:
		p.apply = func(ctx context.Context, id, _ string) error {
			return events.SetStatus(ctx, id, models.EventStatusCompleted)
		}
	case BulkActionCancel:
		p.apply = func(ctx context.Context, id, _ string) error {
			return events.SetStatus(ctx, id, models.EventStatusCancelled)
		}
	default:
		return p.unsupported("events")
	}
	return nil
}

func (p *bulkPlan) Staff() error {
	staff := p.svc.staff
	switch p.action {
	case BulkActionDelete:
		p.apply = func(ctx context.Context, id, _ string) error { return staff.Delete(ctx, id) }
	case BulkActionAvailable, BulkActionOnAssignment, BulkActionOffDuty:
		next := models.StaffStatus(p.action)
		p.apply = func(ctx context.Context, id, _ string) error { return staff.SetStatus(ctx, id, next) }
	default:
		return p.unsupported("staff")
	}
	return nil
}

func (p *bulkPlan) Claims() error {
	claims := p.svc.claims
	switch p.action {
	case BulkActionDelete:
		p.apply = func(ctx context.Context, id, _ string) error { return claims.Delete(ctx, id) }
	case BulkActionApprove:
		p.needsActor = true
		p.apply = func(ctx context.Context, id, actor string) error {
			_, err := claims.Approve(ctx, id, actor)
			return err
		}
	case BulkActionReject:
		p.needsActor = true
		p.apply = func(ctx context.Context, id, actor string) error {
			_, err := claims.Reject(ctx, id, actor, BulkRejectionNote)
			return err
		}
	default:
		return p.unsupported("claims")
	}
	return nil
}

func (p *bulkPlan) Contacts() error {
	return p.unsupported("contacts")
}

func (p *bulkPlan) AuditLogs() error {
	return p.unsupported("audit_logs")
}
