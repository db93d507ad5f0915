package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/funeral-admin-api/internal/models"
	"github.com/noah-isme/funeral-admin-api/internal/service"
	appErrors "github.com/noah-isme/funeral-admin-api/pkg/errors"
)

type fakeAuth struct {
	loginErr error
}

func (f *fakeAuth) Login(ctx context.Context, req models.LoginRequest) (*models.Session, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &models.Session{AccessToken: "token", User: models.AuthUser{ID: "user-1", Email: req.Email}}, nil
}

func (f *fakeAuth) CurrentUser(claims *models.JWTClaims) (*models.CurrentUser, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	return &models.CurrentUser{ID: claims.UserID, Role: claims.AppRole}, nil
}

type fakeOnboarding struct {
	actor string
}

func (f *fakeOnboarding) Onboard(ctx context.Context, req service.OnboardingRequest) (*service.OnboardingResult, error) {
	if claims := models.ActorFromContext(ctx); claims != nil {
		f.actor = claims.UserID
	}
	return &service.OnboardingResult{Staff: &models.Staff{ID: "s1"}, Role: models.RoleStaff}, nil
}

func TestAuthHandlerLogin(t *testing.T) {
	handler := NewAuthHandler(&fakeAuth{}, &fakeOnboarding{})
	c, w := newGinContext(http.MethodPost, "/auth/login", []byte(`{"email":"admin@example.com","password":"secret"}`))

	handler.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandlerLoginInvalidCredentials(t *testing.T) {
	handler := NewAuthHandler(&fakeAuth{loginErr: appErrors.Clone(appErrors.ErrUnauthorized, "invalid email or password")}, &fakeOnboarding{})
	c, w := newGinContext(http.MethodPost, "/auth/login", []byte(`{"email":"admin@example.com","password":"wrong"}`))

	handler.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandlerMe(t *testing.T) {
	handler := NewAuthHandler(&fakeAuth{}, &fakeOnboarding{})

	c, w := newGinContext(http.MethodGet, "/auth/me", nil)
	handler.Me(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c, w = newGinContext(http.MethodGet, "/auth/me", nil)
	withUser(c, "user-1", models.RoleManager)
	handler.Me(c)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandlerOnboardUsesRequestActor(t *testing.T) {
	onboarding := &fakeOnboarding{}
	handler := NewAuthHandler(&fakeAuth{}, onboarding)
	c, w := newGinContext(http.MethodPost, "/onboarding", []byte(`{"first_name":"Lerato","last_name":"Khumalo","phone":"082","role":"Driver"}`))
	withUser(c, "user-9", "")

	handler.Onboard(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "user-9", onboarding.actor)
}
