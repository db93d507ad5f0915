package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/funeral-admin-api/internal/models"
	appErrors "github.com/noah-isme/funeral-admin-api/pkg/errors"
)

func validMemberRequest(number string, tier models.PolicyTier) CreateMemberRequest {
	return CreateMemberRequest{
		MemberNumber: number,
		FirstName:    "Thandi",
		LastName:     "Mokoena",
		IDNumber:     "8001015009087",
		Phone:        "0821234567",
		PolicyTier:   tier,
	}
}

func TestMemberServiceCreateAppliesTierCover(t *testing.T) {
	repo := newFakeMemberRepo()
	audit := &recordingAudit{}
	svc := NewMemberService(repo, audit, validator.New(), zap.NewNop())

	member, err := svc.Create(context.Background(), validMemberRequest("M-001", models.TierGold))
	require.NoError(t, err)
	assert.Equal(t, 25000.0, member.CoverAmount)
	assert.Equal(t, models.MemberStatusActive, member.Status)
	assert.Len(t, repo.items, 1)
	assert.Equal(t, []string{"create:member:" + member.ID}, audit.actions)
}

func TestMemberServiceCreateExplicitCoverWins(t *testing.T) {
	svc := NewMemberService(newFakeMemberRepo(), nil, nil, nil)
	req := validMemberRequest("M-002", models.TierBronze)
	amount := 18000.0
	req.CoverAmount = &amount

	member, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 18000.0, member.CoverAmount)
}

func TestMemberServiceCreateDuplicateNumber(t *testing.T) {
	repo := newFakeMemberRepo(models.Member{ID: "m1", MemberNumber: "M-001"})
	svc := NewMemberService(repo, nil, nil, nil)

	_, err := svc.Create(context.Background(), validMemberRequest("M-001", models.TierSilver))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestMemberServiceCreateRejectsUnknownTier(t *testing.T) {
	svc := NewMemberService(newFakeMemberRepo(), nil, nil, nil)

	_, err := svc.Create(context.Background(), validMemberRequest("M-003", "platinum"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestMemberServiceUpdateKeepsCoverOnTierChange(t *testing.T) {
	repo := newFakeMemberRepo(models.Member{ID: "m1", MemberNumber: "M-001", PolicyTier: models.TierBronze, CoverAmount: 15000})
	svc := NewMemberService(repo, nil, nil, nil)
	tier := models.TierGold

	member, err := svc.Update(context.Background(), "m1", UpdateMemberRequest{PolicyTier: &tier})
	require.NoError(t, err)
	assert.Equal(t, models.TierGold, member.PolicyTier)
	assert.Equal(t, 15000.0, member.CoverAmount)
}

func TestMemberServiceSetStatus(t *testing.T) {
	repo := newFakeMemberRepo(models.Member{ID: "m1", Status: models.MemberStatusActive})
	svc := NewMemberService(repo, nil, nil, nil)

	require.NoError(t, svc.SetStatus(context.Background(), "m1", models.MemberStatusSuspended))
	assert.Equal(t, models.MemberStatusSuspended, repo.items["m1"].Status)

	err := svc.SetStatus(context.Background(), "m1", "frozen")
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	err = svc.SetStatus(context.Background(), "missing", models.MemberStatusActive)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestMemberServiceDeleteAndStats(t *testing.T) {
	repo := newFakeMemberRepo(
		models.Member{ID: "m1", Status: models.MemberStatusActive, PolicyTier: models.TierGold},
		models.Member{ID: "m2", Status: models.MemberStatusSuspended, PolicyTier: models.TierBronze},
	)
	svc := NewMemberService(repo, nil, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), "m2"))
	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Active)
	assert.Equal(t, 1, stats.Gold)

	repo.listErr = errStore
	_, err = svc.Stats(context.Background())
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}
