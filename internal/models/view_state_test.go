package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(v string) *string { return &v }
func intPtr(v int) *int       { return &v }

func TestViewStateFilterChangeResetsPage(t *testing.T) {
	state := NewViewState(MembersTab{})
	state.Apply(ViewStateUpdate{Page: intPtr(4)})
	require.Equal(t, 4, state.Page)

	state.Apply(ViewStateUpdate{Status: strPtr("active"), Page: intPtr(3)})
	assert.Equal(t, 1, state.Page)
	assert.Equal(t, "active", state.Status)

	state.Apply(ViewStateUpdate{Page: intPtr(2)})
	state.Apply(ViewStateUpdate{Status: strPtr("active")})
	assert.Equal(t, 2, state.Page, "unchanged filter keeps the page")

	state.Apply(ViewStateUpdate{Status: strPtr("all")})
	assert.Equal(t, "", state.Status)
	assert.Equal(t, 1, state.Page)
}

func TestViewStatePageSizeChangeResetsPage(t *testing.T) {
	state := NewViewState(ClaimsTab{})
	state.Apply(ViewStateUpdate{Page: intPtr(5)})
	state.Apply(ViewStateUpdate{PageSize: intPtr(25)})
	assert.Equal(t, 1, state.Page)
	assert.Equal(t, 25, state.PageSize)

	state.Apply(ViewStateUpdate{PageSize: intPtr(1000)})
	assert.Equal(t, MaxPageSize, state.PageSize)
}

func TestViewStateSelection(t *testing.T) {
	state := NewViewState(StaffTab{})
	state.Select("a", "b", "a", "", "c")
	assert.Equal(t, []string{"a", "b", "c"}, state.Selected)

	state.Deselect("b")
	assert.Equal(t, []string{"a", "c"}, state.Selected)

	state.ClearSelection()
	assert.Empty(t, state.Selected)
}

type recordingTabHandler struct{ visited []string }

func (r *recordingTabHandler) Members() error   { r.visited = append(r.visited, "members"); return nil }
func (r *recordingTabHandler) Events() error    { r.visited = append(r.visited, "events"); return nil }
func (r *recordingTabHandler) Staff() error     { r.visited = append(r.visited, "staff"); return nil }
func (r *recordingTabHandler) Claims() error    { r.visited = append(r.visited, "claims"); return nil }
func (r *recordingTabHandler) Contacts() error  { r.visited = append(r.visited, "contacts"); return nil }
func (r *recordingTabHandler) AuditLogs() error { r.visited = append(r.visited, "audit_logs"); return nil }

func TestTabDispatchCoversEveryVariant(t *testing.T) {
	h := &recordingTabHandler{}
	for _, tab := range AllTabs() {
		require.NoError(t, tab.Dispatch(h))
	}
	assert.Equal(t, []string{"members", "events", "staff", "claims", "contacts", "audit_logs"}, h.visited)
}

func TestParseTab(t *testing.T) {
	tab, ok := ParseTab(" Claims ")
	require.True(t, ok)
	assert.Equal(t, "claims", tab.Name())

	_, ok = ParseTab("overview")
	assert.False(t, ok)
}

func TestTierCoverAmount(t *testing.T) {
	assert.Equal(t, 15000.0, TierBronze.CoverAmount())
	assert.Equal(t, 20000.0, TierSilver.CoverAmount())
	assert.Equal(t, 25000.0, TierGold.CoverAmount())
}

func TestClaimStatusTransitions(t *testing.T) {
	assert.True(t, ClaimStatusNew.CanTransitionTo(ClaimStatusProcessing))
	assert.True(t, ClaimStatusProcessing.CanTransitionTo(ClaimStatusApproved))
	assert.True(t, ClaimStatusProcessing.CanTransitionTo(ClaimStatusRejected))
	assert.False(t, ClaimStatusApproved.CanTransitionTo(ClaimStatusRejected))
	assert.False(t, ClaimStatusRejected.CanTransitionTo(ClaimStatusProcessing))
}
