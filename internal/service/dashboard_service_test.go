package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/funeral-admin-api/internal/models"
	appErrors "github.com/noah-isme/funeral-admin-api/pkg/errors"
)

type dashboardFixture struct {
	members    *fakeMemberRepo
	events     *fakeEventRepo
	claims     *fakeClaimRepo
	staff      *fakeStaffRepo
	contacts   *fakeContactRepo
	checklists *fakeChecklistRepo
}

func newDashboardFixture() *dashboardFixture {
	submitted := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	processed := submitted.AddDate(0, 0, 3)
	due := time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)
	return &dashboardFixture{
		members: newFakeMemberRepo(
			models.Member{ID: "m1", Status: models.MemberStatusActive, PolicyTier: models.TierGold},
			models.Member{ID: "m2", Status: models.MemberStatusCancelled, PolicyTier: models.TierSilver},
		),
		events: newFakeEventRepo(
			models.BurialEvent{ID: "e1", Status: models.EventStatusScheduled, EventDate: time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)},
		),
		claims: newFakeClaimRepo(
			models.Claim{ID: "c1", Status: models.ClaimStatusApproved, Amount: 25000, SubmittedDate: submitted, ProcessedDate: &processed},
			models.Claim{ID: "c2", Status: models.ClaimStatusRejected, Amount: 15000, SubmittedDate: submitted, ProcessedDate: &processed},
			models.Claim{ID: "c3", Status: models.ClaimStatusNew, Amount: 20000, SubmittedDate: submitted},
		),
		staff: newFakeStaffRepo(
			models.Staff{ID: "s1", Status: models.StaffStatusAvailable, CompletionRate: 90},
			models.Staff{ID: "s2", Status: models.StaffStatusOffDuty, CompletionRate: 75},
		),
		contacts: newFakeContactRepo(
			models.Contact{ID: "k1", Type: models.ContactTypeSupplier},
		),
		checklists: newFakeChecklistRepo(
			models.ChecklistItem{ID: "i1", EventID: "e1", Completed: true},
			models.ChecklistItem{ID: "i2", EventID: "e1", DueDate: &due},
		),
	}
}

func (f *dashboardFixture) service() *DashboardService {
	svc := NewDashboardService(DashboardServiceParams{
		Members:    f.members,
		Events:     f.events,
		Claims:     f.claims,
		Staff:      f.staff,
		Contacts:   f.contacts,
		Checklists: f.checklists,
		Metrics:    NewMetricsService(),
		Location:   time.UTC,
	})
	svc.now = func() time.Time { return time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestDashboardServiceStats(t *testing.T) {
	stats, err := newDashboardFixture().service().Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Members.Total)
	assert.Equal(t, 1, stats.Members.Active)
	assert.Equal(t, 1, stats.Events.ThisMonth)
	assert.Equal(t, 3, stats.Claims.Total)
	assert.Equal(t, 3.0, stats.Claims.AvgProcessingDays)
	assert.Equal(t, 82.5, stats.Staff.AvgCompletionRate)
	assert.Equal(t, 1, stats.Contacts.Suppliers)
	assert.Equal(t, 50, stats.Checklists.CompletionRate)
	assert.Equal(t, 1, stats.Checklists.Overdue)
	// revenue counts every claim, not only approved ones
	assert.Equal(t, 60000.0, stats.Revenue)
}

func TestDashboardServiceStatsFailsWhole(t *testing.T) {
	fixture := newDashboardFixture()
	fixture.contacts.listErr = errStore

	stats, err := fixture.service().Stats(context.Background())
	require.Error(t, err)
	assert.Nil(t, stats)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}
