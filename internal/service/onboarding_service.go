package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/funeral-admin-api/internal/models"
	appErrors "github.com/noah-isme/funeral-admin-api/pkg/errors"
)

type onboardingStaff interface {
	FindByUserID(ctx context.Context, userID string) (*models.Staff, error)
	Create(ctx context.Context, req CreateStaffRequest) (*models.Staff, error)
}

// OnboardingRequest is the staff profile a new user fills in.
type OnboardingRequest struct {
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name" validate:"required"`
	Phone     string  `json:"phone" validate:"required"`
	Role      string  `json:"role" validate:"required"`
	Email     *string `json:"email" validate:"omitempty,email"`
}

// OnboardingResult is returned after onboarding.
type OnboardingResult struct {
	Staff *models.Staff   `json:"staff"`
	Role  models.UserRole `json:"role"`
}

// OnboardingService links a freshly signed-up account to a staff profile.
type OnboardingService struct {
	staff  onboardingStaff
	roles  roleRepository
	audit  auditRecorder
	logger *zap.Logger
}

// NewOnboardingService constructs the onboarding service.
func NewOnboardingService(staff onboardingStaff, roles roleRepository, audit auditRecorder, logger *zap.Logger) *OnboardingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OnboardingService{staff: staff, roles: roles, audit: auditOrNoop(audit), logger: logger}
}

// Onboard creates the caller's staff profile and grants the staff role unless the caller
// already holds a role.
func (s *OnboardingService) Onboard(ctx context.Context, req OnboardingRequest) (*OnboardingResult, error) {
	claims := models.ActorFromContext(ctx)
	if claims == nil || claims.UserID == "" {
		return nil, appErrors.ErrUnauthorized
	}

	existing, err := s.staff.FindByUserID(ctx, claims.UserID)
	if err == nil && existing != nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "user already onboarded")
	}
	if err != nil && !errors.Is(err, appErrors.ErrNotFound) {
		return nil, err
	}

	email := req.Email
	if email == nil && claims.Email != "" {
		email = &claims.Email
	}
	userID := claims.UserID
	member, err := s.staff.Create(ctx, CreateStaffRequest{
		UserID:    &userID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     email,
		Role:      req.Role,
	})
	if err != nil {
		return nil, err
	}

	role, err := s.roles.FindRole(ctx, userID)
	switch {
	case err == nil && role.Valid():
	case err == nil || errors.Is(err, sql.ErrNoRows):
		role = models.RoleStaff
		if err := s.roles.AssignRole(ctx, userID, role); err != nil {
			return nil, appErrors.Internal(err, "failed to assign role")
		}
	default:
		return nil, appErrors.Internal(err, "failed to load user role")
	}

	s.audit.Log(ctx, models.AuditActionOnboard, entityStaff, member.ID, nil, map[string]string{"role": string(role)})
	s.logger.Info("user onboarded", zap.String("user_id", userID), zap.String("staff_id", member.ID))
	return &OnboardingResult{Staff: member, Role: role}, nil
}
