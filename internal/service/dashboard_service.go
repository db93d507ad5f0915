package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/funeral-admin-api/internal/dto"
	"github.com/noah-isme/funeral-admin-api/internal/models"
	appErrors "github.com/noah-isme/funeral-admin-api/pkg/errors"
)

type memberLister interface {
	List(ctx context.Context, filter models.MemberFilter) ([]models.Member, error)
}

type eventLister interface {
	List(ctx context.Context, filter models.EventFilter) ([]models.BurialEvent, error)
}

type claimLister interface {
	List(ctx context.Context, filter models.ClaimFilter) ([]models.Claim, error)
}

type staffLister interface {
	List(ctx context.Context, filter models.StaffFilter) ([]models.Staff, error)
}

type contactLister interface {
	List(ctx context.Context, filter models.ContactFilter) ([]models.Contact, error)
}

type checklistLister interface {
	List(ctx context.Context, filter models.ChecklistFilter) ([]models.ChecklistItem, error)
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Members    memberLister
	Events     eventLister
	Claims     claimLister
	Staff      staffLister
	Contacts   contactLister
	Checklists checklistLister
	Metrics    *MetricsService
	Location   *time.Location
	Logger     *zap.Logger
}

// DashboardService computes whole-system statistics from the full collections.
type DashboardService struct {
	members    memberLister
	events     eventLister
	claims     claimLister
	staff      staffLister
	contacts   contactLister
	checklists checklistLister
	metrics    *MetricsService
	location   *time.Location
	logger     *zap.Logger
	now        func() time.Time
}

// NewDashboardService builds the aggregator.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	location := params.Location
	if location == nil {
		location = time.Local
	}
	return &DashboardService{
		members:    params.Members,
		events:     params.Events,
		claims:     params.Claims,
		staff:      params.Staff,
		contacts:   params.Contacts,
		checklists: params.Checklists,
		metrics:    params.Metrics,
		location:   location,
		logger:     logger,
		now:        time.Now,
	}
}

// Stats loads the six collections concurrently and summarises them. A failure of any read
// fails the whole call; partial stats are never returned.
func (s *DashboardService) Stats(ctx context.Context) (*dto.DashboardStats, error) {
	var (
		members    []models.Member
		events     []models.BurialEvent
		claims     []models.Claim
		staff      []models.Staff
		contacts   []models.Contact
		checklists []models.ChecklistItem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		defer s.observe("dashboard_members", time.Now())
		members, err = s.members.List(gctx, models.MemberFilter{})
		return err
	})
	g.Go(func() (err error) {
		defer s.observe("dashboard_events", time.Now())
		events, err = s.events.List(gctx, models.EventFilter{})
		return err
	})
	g.Go(func() (err error) {
		defer s.observe("dashboard_claims", time.Now())
		claims, err = s.claims.List(gctx, models.ClaimFilter{})
		return err
	})
	g.Go(func() (err error) {
		defer s.observe("dashboard_staff", time.Now())
		staff, err = s.staff.List(gctx, models.StaffFilter{})
		return err
	})
	g.Go(func() (err error) {
		defer s.observe("dashboard_contacts", time.Now())
		contacts, err = s.contacts.List(gctx, models.ContactFilter{})
		return err
	})
	g.Go(func() (err error) {
		defer s.observe("dashboard_checklists", time.Now())
		checklists, err = s.checklists.List(gctx, models.ChecklistFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("dashboard stats failed", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to load dashboard stats")
	}

	now := s.now().In(s.location)
	claimStats := ClaimStatsOf(claims)
	return &dto.DashboardStats{
		Members:     MemberStatsOf(members),
		Events:      EventStatsOf(events, now),
		Claims:      claimStats,
		Staff:       StaffStatsOf(staff),
		Contacts:    ContactStatsOf(contacts),
		Checklists:  ChecklistStatsOf(checklists, now),
		Revenue:     claimStats.TotalAmount,
		GeneratedAt: now.UTC(),
	}, nil
}

func (s *DashboardService) observe(label string, started time.Time) {
	s.metrics.ObserveDBQuery(label, time.Since(started))
}
