package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/funeral-admin-api/internal/models"
	"github.com/noah-isme/funeral-admin-api/pkg/baas"
	appErrors "github.com/noah-isme/funeral-admin-api/pkg/errors"
)

type authGateway interface {
	SignInWithPassword(ctx context.Context, email, password string) (*baas.Session, error)
	GetUser(ctx context.Context, accessToken string) (*baas.User, error)
}

type roleRepository interface {
	FindRole(ctx context.Context, userID string) (models.UserRole, error)
	AssignRole(ctx context.Context, userID string, role models.UserRole) error
}

// AuthConfig defines configuration for token verification. Without a JWT secret every token is
// checked against the BaaS user endpoint.
type AuthConfig struct {
	JWTSecret string
}

// AuthService signs users in through the BaaS and resolves their application role.
type AuthService struct {
	gateway   authGateway
	roles     roleRepository
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(gateway authGateway, roles roleRepository, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{gateway: gateway, roles: roles, validator: validate, logger: logger, config: config}
}

// Login exchanges credentials for a BaaS session.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid login payload")
	}

	session, err := s.gateway.SignInWithPassword(ctx, strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, baas.ErrUnauthorized) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid email or password")
		}
		return nil, appErrors.Internal(err, "failed to sign in")
	}

	role, err := s.resolveRole(ctx, session.User.ID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user signed in", zap.String("user_id", session.User.ID), zap.String("role", string(role)))

	return &models.Session{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		TokenType:    session.TokenType,
		ExpiresIn:    int64(session.ExpiresIn),
		User: models.AuthUser{
			ID:    session.User.ID,
			Email: session.User.Email,
			Phone: session.User.Phone,
			Role:  string(role),
		},
	}, nil
}

// ValidateToken verifies an access token and attaches the caller's application role. Users
// without a role row come back with an empty AppRole.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*models.JWTClaims, error) {
	var (
		claims *models.JWTClaims
		err    error
	)
	if s.config.JWTSecret != "" {
		claims, err = s.parseLocal(tokenString)
	} else {
		claims, err = s.verifyRemote(ctx, tokenString)
	}
	if err != nil {
		return nil, err
	}

	role, err := s.resolveRole(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	claims.AppRole = role
	return claims, nil
}

// CurrentUser describes the authenticated caller.
func (s *AuthService) CurrentUser(claims *models.JWTClaims) (*models.CurrentUser, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	return &models.CurrentUser{ID: claims.UserID, Email: claims.Email, Role: claims.AppRole}, nil
}

func (s *AuthService) parseLocal(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	claims.UserID = claims.Subject
	return claims, nil
}

func (s *AuthService) verifyRemote(ctx context.Context, tokenString string) (*models.JWTClaims, error) {
	user, err := s.gateway.GetUser(ctx, tokenString)
	if err != nil {
		if errors.Is(err, baas.ErrUnauthorized) || errors.Is(err, baas.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
		}
		return nil, appErrors.Internal(err, "failed to verify token")
	}
	return &models.JWTClaims{
		UserID:           user.ID,
		Email:            user.Email,
		RegisteredClaims: jwt.RegisteredClaims{Subject: user.ID},
	}, nil
}

func (s *AuthService) resolveRole(ctx context.Context, userID string) (models.UserRole, error) {
	if s.roles == nil || userID == "" {
		return "", nil
	}
	role, err := s.roles.FindRole(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", appErrors.Internal(err, "failed to load user role")
	}
	return role, nil
}
