package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/funeral-admin-api/internal/models"
	"github.com/noah-isme/funeral-admin-api/pkg/export"
	"github.com/noah-isme/funeral-admin-api/pkg/listing"
)

func newTabFixture(views *fakeViewStateStore) *TabService {
	email := "thandi@example.com"
	members := make([]models.Member, 0, 25)
	for i := 0; i < 23; i++ {
		members = append(members, models.Member{
			ID:           "m" + string(rune('a'+i)),
			MemberNumber: "M-" + string(rune('A'+i)),
			FirstName:    "Member",
			LastName:     string(rune('A' + i)),
			PolicyTier:   models.TierBronze,
			Status:       models.MemberStatusActive,
		})
	}
	members = append(members,
		models.Member{ID: "gold1", MemberNumber: "G-1", FirstName: "Thandi", LastName: "Mokoena", Email: &email, PolicyTier: models.TierGold, Status: models.MemberStatusActive, CoverAmount: 25000},
		models.Member{ID: "gold2", MemberNumber: "G-2", FirstName: "Sipho", LastName: "Dlamini", PolicyTier: models.TierGold, Status: models.MemberStatusSuspended, CoverAmount: 25000},
	)

	note := `Family said "urgent"`
	svc := NewTabService(TabServiceParams{
		Members: newFakeMemberRepo(members...),
		Events:  newFakeEventRepo(),
		Staff:   newFakeStaffRepo(),
		Claims: newFakeClaimRepo(
			models.Claim{ID: "c1", ClaimNumber: "CLM-2025-0001", DeceasedName: "Nomsa", Amount: 25000, Status: models.ClaimStatusNew, Notes: &note},
			models.Claim{ID: "c2", ClaimNumber: "CLM-2025-0002", DeceasedName: "Bongani", Amount: 15000, Status: models.ClaimStatusApproved},
		),
		Contacts:   newFakeContactRepo(),
		Audit:      &fakeAuditRepo{},
		ViewStates: NewViewStateService(views, nil, nil, nil),
	})
	svc.now = func() time.Time { return time.Date(2025, 12, 15, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestTabServiceListTabPaginates(t *testing.T) {
	svc := newTabFixture(newFakeViewStateStore())
	page := 3

	result, err := svc.ListTab(context.Background(), "user-1", models.MembersTab{}, models.ViewStateUpdate{Page: &page})
	require.NoError(t, err)
	assert.Equal(t, "members", result.Tab)
	assert.Equal(t, 25, result.Total)
	assert.Equal(t, 3, result.PageCount)
	assert.Equal(t, 3, result.Page)
	items, ok := result.Items.([]models.Member)
	require.True(t, ok)
	assert.Len(t, items, 5)
}

func TestTabServiceListTabFilterResetsPage(t *testing.T) {
	views := newFakeViewStateStore()
	svc := newTabFixture(views)
	page := 3
	_, err := svc.ListTab(context.Background(), "user-1", models.MembersTab{}, models.ViewStateUpdate{Page: &page})
	require.NoError(t, err)

	category := "gold"
	result, err := svc.ListTab(context.Background(), "user-1", models.MembersTab{}, models.ViewStateUpdate{Category: &category})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, "gold", views.states["user-1"].Category)
}

func TestTabServiceListTabSearch(t *testing.T) {
	svc := newTabFixture(nil)
	search := "THANDI@"

	result, err := svc.ListTab(context.Background(), "", models.MembersTab{}, models.ViewStateUpdate{Search: &search})
	require.NoError(t, err)
	items := result.Items.([]models.Member)
	require.Len(t, items, 1)
	assert.Equal(t, "gold1", items[0].ID)
}

func TestTabServiceExportCSV(t *testing.T) {
	svc := newTabFixture(nil)

	file, err := svc.ExportTab(context.Background(), models.ClaimsTab{}, listing.Query{Status: "new"}, export.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "claims_2025-12-15.csv", file.FileName)
	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)

	lines := strings.Split(strings.TrimRight(string(file.Payload), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"Claim Number","Deceased","Amount","Status","Submitted","Processed","Notes"`, lines[0])
	assert.Equal(t, `"CLM-2025-0001","Nomsa","25000.00","new","","","Family said ""urgent"""`, lines[1])
}

func TestTabServiceExportIgnoresPaging(t *testing.T) {
	svc := newTabFixture(nil)

	file, err := svc.ExportTab(context.Background(), models.MembersTab{}, listing.Query{Page: 2, PageSize: 5}, export.FormatCSV)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(file.Payload), "\n"), "\n")
	assert.Len(t, lines, 26)
}

func TestTabServiceExportXLSX(t *testing.T) {
	svc := newTabFixture(nil)

	file, err := svc.ExportTab(context.Background(), models.MembersTab{}, listing.Query{Category: "gold"}, export.FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "members_2025-12-15.xlsx", file.FileName)
	assert.NotEmpty(t, file.Payload)
}
