package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/funeral-admin-api/internal/dto"
	"github.com/noah-isme/funeral-admin-api/internal/models"
	appErrors "github.com/noah-isme/funeral-admin-api/pkg/errors"
)

const entityMember = "member"

type memberRepository interface {
	List(ctx context.Context, filter models.MemberFilter) ([]models.Member, error)
	FindByID(ctx context.Context, id string) (*models.Member, error)
	ExistsByMemberNumber(ctx context.Context, number, excludeID string) (bool, error)
	Create(ctx context.Context, member *models.Member) error
	Update(ctx context.Context, member *models.Member) error
	UpdateStatus(ctx context.Context, id string, status models.MemberStatus) error
	Delete(ctx context.Context, id string) error
}

// CreateMemberRequest holds the payload for registering a member. CoverAmount defaults to the
// tier's cover when omitted.
type CreateMemberRequest struct {
	MemberNumber string              `json:"member_number" validate:"required"`
	FirstName    string              `json:"first_name" validate:"required"`
	LastName     string              `json:"last_name" validate:"required"`
	IDNumber     string              `json:"id_number" validate:"required"`
	Phone        string              `json:"phone" validate:"required"`
	Email        *string             `json:"email" validate:"omitempty,email"`
	Address      *string             `json:"address"`
	PolicyTier   models.PolicyTier   `json:"policy_tier" validate:"required,oneof=bronze silver gold"`
	CoverAmount  *float64            `json:"cover_amount" validate:"omitempty,gte=0"`
	Status       models.MemberStatus `json:"status" validate:"omitempty,oneof=active suspended cancelled"`
	JoinedDate   *time.Time          `json:"joined_date"`
}

// UpdateMemberRequest carries a partial member update.
type UpdateMemberRequest struct {
	MemberNumber *string              `json:"member_number" validate:"omitempty,min=1"`
	FirstName    *string              `json:"first_name" validate:"omitempty,min=1"`
	LastName     *string              `json:"last_name" validate:"omitempty,min=1"`
	IDNumber     *string              `json:"id_number"`
	Phone        *string              `json:"phone"`
	Email        *string              `json:"email" validate:"omitempty,email"`
	Address      *string              `json:"address"`
	PolicyTier   *models.PolicyTier   `json:"policy_tier" validate:"omitempty,oneof=bronze silver gold"`
	CoverAmount  *float64             `json:"cover_amount" validate:"omitempty,gte=0"`
	Status       *models.MemberStatus `json:"status" validate:"omitempty,oneof=active suspended cancelled"`
	JoinedDate   *time.Time           `json:"joined_date"`
}

// MemberService handles member use-cases.
type MemberService struct {
	repo      memberRepository
	audit     auditRecorder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMemberService constructs the member service.
func NewMemberService(repo memberRepository, audit auditRecorder, validate *validator.Validate, logger *zap.Logger) *MemberService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemberService{repo: repo, audit: auditOrNoop(audit), validator: validate, logger: logger}
}

// List returns every member matching the filter.
func (s *MemberService) List(ctx context.Context, filter models.MemberFilter) ([]models.Member, error) {
	members, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list members")
	}
	return members, nil
}

// Get returns a member by ID.
func (s *MemberService) Get(ctx context.Context, id string) (*models.Member, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, entityMember)
	}
	return member, nil
}

// Create registers a member.
func (s *MemberService) Create(ctx context.Context, req CreateMemberRequest) (*models.Member, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid member payload")
	}
	number := strings.TrimSpace(req.MemberNumber)
	if err := s.ensureNumberFree(ctx, number, ""); err != nil {
		return nil, err
	}

	member := &models.Member{
		MemberNumber: number,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		IDNumber:     strings.TrimSpace(req.IDNumber),
		Phone:        strings.TrimSpace(req.Phone),
		Email:        optionalString(req.Email),
		Address:      optionalString(req.Address),
		PolicyTier:   req.PolicyTier,
		CoverAmount:  req.PolicyTier.CoverAmount(),
		Status:       req.Status,
	}
	if req.CoverAmount != nil {
		member.CoverAmount = *req.CoverAmount
	}
	if member.Status == "" {
		member.Status = models.MemberStatusActive
	}
	if req.JoinedDate != nil {
		member.JoinedDate = *req.JoinedDate
	}

	if err := s.repo.Create(ctx, member); err != nil {
		return nil, appErrors.Internal(err, "failed to create member")
	}
	s.audit.Log(ctx, models.AuditActionCreate, entityMember, member.ID, nil, member)
	return member, nil
}

// Update applies a partial update. Changing the tier does not touch the cover amount.
func (s *MemberService) Update(ctx context.Context, id string, req UpdateMemberRequest) (*models.Member, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid member payload")
	}
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, entityMember)
	}
	before := *member

	if req.MemberNumber != nil {
		number := strings.TrimSpace(*req.MemberNumber)
		if number != member.MemberNumber {
			if err := s.ensureNumberFree(ctx, number, id); err != nil {
				return nil, err
			}
			member.MemberNumber = number
		}
	}
	if req.FirstName != nil {
		member.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		member.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.IDNumber != nil {
		member.IDNumber = strings.TrimSpace(*req.IDNumber)
	}
	if req.Phone != nil {
		member.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		member.Email = optionalString(req.Email)
	}
	if req.Address != nil {
		member.Address = optionalString(req.Address)
	}
	if req.PolicyTier != nil {
		member.PolicyTier = *req.PolicyTier
	}
	if req.CoverAmount != nil {
		member.CoverAmount = *req.CoverAmount
	}
	if req.Status != nil {
		member.Status = *req.Status
	}
	if req.JoinedDate != nil {
		member.JoinedDate = *req.JoinedDate
	}

	if err := s.repo.Update(ctx, member); err != nil {
		return nil, writeError(err, "update", entityMember)
	}
	s.audit.Log(ctx, models.AuditActionUpdate, entityMember, id, before, member)
	return member, nil
}

// SetStatus moves a member to a new membership status.
func (s *MemberService) SetStatus(ctx context.Context, id string, status models.MemberStatus) error {
	switch status {
	case models.MemberStatusActive, models.MemberStatusSuspended, models.MemberStatusCancelled:
	default:
		return appErrors.Clone(appErrors.ErrValidation, "invalid member status")
	}
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return loadError(err, entityMember)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return writeError(err, "update", entityMember)
	}
	s.audit.Log(ctx, models.AuditActionStatusChange, entityMember, id,
		map[string]string{"status": string(member.Status)},
		map[string]string{"status": string(status)})
	return nil
}

// Delete hard-deletes a member.
func (s *MemberService) Delete(ctx context.Context, id string) error {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return loadError(err, entityMember)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "delete", entityMember)
	}
	s.audit.Log(ctx, models.AuditActionDelete, entityMember, id, member, nil)
	return nil
}

// Stats summarises all members.
func (s *MemberService) Stats(ctx context.Context) (*dto.MemberStats, error) {
	members, err := s.repo.List(ctx, models.MemberFilter{})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load member stats")
	}
	stats := MemberStatsOf(members)
	return &stats, nil
}

func (s *MemberService) ensureNumberFree(ctx context.Context, number, excludeID string) error {
	exists, err := s.repo.ExistsByMemberNumber(ctx, number, excludeID)
	if err != nil {
		return appErrors.Internal(err, "failed to validate member number")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "member number already used")
	}
	return nil
}
