package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/funeral-admin-api/internal/models"
	"github.com/noah-isme/funeral-admin-api/pkg/baas"
	appErrors "github.com/noah-isme/funeral-admin-api/pkg/errors"
)

type fakeGateway struct {
	session   *baas.Session
	signInErr error
	users     map[string]*baas.User
	calls     int
}

func (g *fakeGateway) SignInWithPassword(ctx context.Context, email, password string) (*baas.Session, error) {
	if g.signInErr != nil {
		return nil, g.signInErr
	}
	return g.session, nil
}

func (g *fakeGateway) GetUser(ctx context.Context, accessToken string) (*baas.User, error) {
	g.calls++
	user, ok := g.users[accessToken]
	if !ok {
		return nil, baas.ErrUnauthorized
	}
	return user, nil
}

const testJWTSecret = "test-secret"

func signToken(t *testing.T, secret, subject string, expires time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   subject,
		"email": "admin@example.com",
		"role":  "authenticated",
		"exp":   expires.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthServiceLogin(t *testing.T) {
	roles := newFakeRoleRepo()
	roles.roles["user-1"] = models.RoleAdmin
	gateway := &fakeGateway{session: &baas.Session{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "bearer",
		ExpiresIn:    3600,
		User:         baas.User{ID: "user-1", Email: "admin@example.com"},
	}}
	svc := NewAuthService(gateway, roles, nil, nil, AuthConfig{})

	session, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "access", session.AccessToken)
	assert.Equal(t, int64(3600), session.ExpiresIn)
	assert.Equal(t, "admin", session.User.Role)
}

func TestAuthServiceLoginInvalidCredentials(t *testing.T) {
	svc := NewAuthService(&fakeGateway{signInErr: baas.ErrUnauthorized}, newFakeRoleRepo(), nil, nil, AuthConfig{})

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@example.com", Password: "wrong"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
	assert.Equal(t, "invalid email or password", appErr.Message)

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "not-an-email", Password: "x"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateLocalToken(t *testing.T) {
	roles := newFakeRoleRepo()
	roles.roles["user-1"] = models.RoleManager
	gateway := &fakeGateway{}
	svc := NewAuthService(gateway, roles, nil, nil, AuthConfig{JWTSecret: testJWTSecret})

	claims, err := svc.ValidateToken(context.Background(), signToken(t, testJWTSecret, "user-1", time.Now().Add(time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, models.RoleManager, claims.AppRole)
	assert.Zero(t, gateway.calls)
}

func TestAuthServiceRejectsBadTokens(t *testing.T) {
	svc := NewAuthService(&fakeGateway{}, newFakeRoleRepo(), nil, nil, AuthConfig{JWTSecret: testJWTSecret})

	_, err := svc.ValidateToken(context.Background(), signToken(t, "other-secret", "user-1", time.Now().Add(time.Hour)))
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)

	_, err = svc.ValidateToken(context.Background(), signToken(t, testJWTSecret, "user-1", time.Now().Add(-time.Hour)))
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)

	_, err = svc.ValidateToken(context.Background(), signToken(t, testJWTSecret, "", time.Now().Add(time.Hour)))
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateRemoteToken(t *testing.T) {
	gateway := &fakeGateway{users: map[string]*baas.User{"opaque": {ID: "user-2", Email: "staff@example.com"}}}
	svc := NewAuthService(gateway, newFakeRoleRepo(), nil, nil, AuthConfig{})

	claims, err := svc.ValidateToken(context.Background(), "opaque")
	require.NoError(t, err)
	assert.Equal(t, "user-2", claims.UserID)
	assert.Equal(t, models.UserRole(""), claims.AppRole)
	assert.Equal(t, 1, gateway.calls)

	_, err = svc.ValidateToken(context.Background(), "unknown")
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceRoleLookupFailure(t *testing.T) {
	roles := newFakeRoleRepo()
	roles.findErr = errStore
	svc := NewAuthService(&fakeGateway{}, roles, nil, nil, AuthConfig{JWTSecret: testJWTSecret})

	_, err := svc.ValidateToken(context.Background(), signToken(t, testJWTSecret, "user-1", time.Now().Add(time.Hour)))
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}
