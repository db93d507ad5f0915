package models

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds credentials forwarded to the BaaS password grant.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session is the token pair issued by the BaaS auth API.
type Session struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int64    `json:"expires_in"`
	User         AuthUser `json:"user"`
}

// AuthUser is the account record returned by the BaaS auth API.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role,omitempty"`
}

// JWTClaims represents the access token payload issued by the BaaS plus the resolved app role.
type JWTClaims struct {
	UserID  string   `json:"-"`
	Email   string   `json:"email"`
	Role    string   `json:"role"`
	AppRole UserRole `json:"-"`
	jwt.RegisteredClaims
}

// CurrentUser is returned by the session endpoint.
type CurrentUser struct {
	ID    string   `json:"id"`
	Email string   `json:"email"`
	Role  UserRole `json:"role,omitempty"`
}

type actorKey struct{}

// WithActor stores the authenticated claims on a context.
func WithActor(ctx context.Context, claims *JWTClaims) context.Context {
	return context.WithValue(ctx, actorKey{}, claims)
}

// ActorFromContext returns the authenticated claims, or nil when the call is anonymous.
func ActorFromContext(ctx context.Context) *JWTClaims {
	if ctx == nil {
		return nil
	}
	claims, _ := ctx.Value(actorKey{}).(*JWTClaims)
	return claims
}
