package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/funeral-admin-api/internal/models"
	appErrors "github.com/noah-isme/funeral-admin-api/pkg/errors"
)

func onboardingRequest() OnboardingRequest {
	return OnboardingRequest{FirstName: "Lerato", LastName: "Khumalo", Phone: "0821234567", Role: "Funeral Director"}
}

func TestOnboardingServiceOnboard(t *testing.T) {
	staffRepo := newFakeStaffRepo()
	roles := newFakeRoleRepo()
	audit := &recordingAudit{}
	svc := NewOnboardingService(NewStaffService(staffRepo, nil, nil, nil), roles, audit, nil)

	ctx := models.WithActor(context.Background(), &models.JWTClaims{UserID: "user-9", Email: "lerato@example.com"})
	result, err := svc.Onboard(ctx, onboardingRequest())
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, result.Role)
	assert.Equal(t, models.RoleStaff, roles.assigned["user-9"])
	require.NotNil(t, result.Staff.UserID)
	assert.Equal(t, "user-9", *result.Staff.UserID)
	require.NotNil(t, result.Staff.Email)
	assert.Equal(t, "lerato@example.com", *result.Staff.Email)
	assert.Equal(t, models.StaffStatusAvailable, result.Staff.Status)
	assert.Contains(t, audit.actions, "onboard:staff:"+result.Staff.ID)

	_, err = svc.Onboard(ctx, onboardingRequest())
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestOnboardingServiceKeepsExistingRole(t *testing.T) {
	roles := newFakeRoleRepo()
	roles.roles["user-1"] = models.RoleAdmin
	svc := NewOnboardingService(NewStaffService(newFakeStaffRepo(), nil, nil, nil), roles, nil, nil)

	result, err := svc.Onboard(actorContext("user-1"), onboardingRequest())
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, result.Role)
	assert.Empty(t, roles.assigned)
}

func TestOnboardingServiceRequiresActor(t *testing.T) {
	svc := NewOnboardingService(NewStaffService(newFakeStaffRepo(), nil, nil, nil), newFakeRoleRepo(), nil, nil)

	_, err := svc.Onboard(context.Background(), onboardingRequest())
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestOnboardingServiceValidatesProfile(t *testing.T) {
	staffRepo := newFakeStaffRepo()
	svc := NewOnboardingService(NewStaffService(staffRepo, nil, nil, nil), newFakeRoleRepo(), nil, nil)

	_, err := svc.Onboard(actorContext("user-1"), OnboardingRequest{FirstName: "Lerato"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, staffRepo.items)
}
