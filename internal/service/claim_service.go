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

const entityClaim = "claim"

// BulkRejectionNote is the note stamped on claims rejected through a bulk action.
const BulkRejectionNote = "Bulk rejection"

type claimRepository interface {
	List(ctx context.Context, filter models.ClaimFilter) ([]models.Claim, error)
	FindByID(ctx context.Context, id string) (*models.Claim, error)
	Create(ctx context.Context, claim *models.Claim) error
	Update(ctx context.Context, claim *models.Claim) error
	Delete(ctx context.Context, id string) error
}

type memberLookup interface {
	FindByID(ctx context.Context, id string) (*models.Member, error)
}

// CreateClaimRequest holds the payload for lodging a claim. Amount defaults to the member's
// cover amount when omitted.
type CreateClaimRequest struct {
	MemberID          string     `json:"member_id" validate:"required"`
	AttendingMemberID *string    `json:"attending_member_id"`
	DeceasedName      string     `json:"deceased_name" validate:"required"`
	Amount            *float64   `json:"amount" validate:"omitempty,gte=0"`
	SubmittedDate     *time.Time `json:"submitted_date"`
	Notes             *string    `json:"notes"`
}

// UpdateClaimRequest edits descriptive claim fields. Status moves through Process, Approve
// and Reject only.
type UpdateClaimRequest struct {
	AttendingMemberID *string  `json:"attending_member_id"`
	DeceasedName      *string  `json:"deceased_name" validate:"omitempty,min=1"`
	Amount            *float64 `json:"amount" validate:"omitempty,gte=0"`
	Notes             *string  `json:"notes"`
}

// RejectClaimRequest carries the mandatory rejection note.
type RejectClaimRequest struct {
	Note string `json:"note" validate:"required"`
}

// ClaimService handles the claim lifecycle.
type ClaimService struct {
	repo      claimRepository
	members   memberLookup
	audit     auditRecorder
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewClaimService constructs the claim service.
func NewClaimService(repo claimRepository, members memberLookup, audit auditRecorder, validate *validator.Validate, logger *zap.Logger) *ClaimService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClaimService{repo: repo, members: members, audit: auditOrNoop(audit), validator: validate, logger: logger, now: time.Now}
}

// List returns claims matching the filter, newest submission first.
func (s *ClaimService) List(ctx context.Context, filter models.ClaimFilter) ([]models.Claim, error) {
	claims, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list claims")
	}
	return claims, nil
}

// Get returns a claim by ID.
func (s *ClaimService) Get(ctx context.Context, id string) (*models.Claim, error) {
	claim, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, entityClaim)
	}
	return claim, nil
}

// Create lodges a new claim against an existing member.
func (s *ClaimService) Create(ctx context.Context, req CreateClaimRequest) (*models.Claim, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid claim payload")
	}
	member, err := s.members.FindByID(ctx, strings.TrimSpace(req.MemberID))
	if err != nil {
		return nil, loadError(err, entityMember)
	}

	claim := &models.Claim{
		ClaimNumber:       generateNumber(ClaimNumberPrefix, s.now()),
		MemberID:          member.ID,
		AttendingMemberID: optionalString(req.AttendingMemberID),
		DeceasedName:      strings.TrimSpace(req.DeceasedName),
		Amount:            member.CoverAmount,
		Status:            models.ClaimStatusNew,
		Notes:             optionalString(req.Notes),
	}
	if req.Amount != nil {
		claim.Amount = *req.Amount
	}
	if req.SubmittedDate != nil {
		claim.SubmittedDate = *req.SubmittedDate
	}

	if err := s.repo.Create(ctx, claim); err != nil {
		return nil, appErrors.Internal(err, "failed to create claim")
	}
	s.audit.Log(ctx, models.AuditActionCreate, entityClaim, claim.ID, nil, claim)
	return claim, nil
}

// Update edits descriptive fields of a claim.
func (s *ClaimService) Update(ctx context.Context, id string, req UpdateClaimRequest) (*models.Claim, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid claim payload")
	}
	claim, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, entityClaim)
	}
	before := *claim
	if req.AttendingMemberID != nil {
		claim.AttendingMemberID = optionalString(req.AttendingMemberID)
	}
	if req.DeceasedName != nil {
		claim.DeceasedName = strings.TrimSpace(*req.DeceasedName)
	}
	if req.Amount != nil {
		claim.Amount = *req.Amount
	}
	if req.Notes != nil {
		claim.Notes = optionalString(req.Notes)
	}
	if err := s.repo.Update(ctx, claim); err != nil {
		return nil, writeError(err, "update", entityClaim)
	}
	s.audit.Log(ctx, models.AuditActionUpdate, entityClaim, id, before, claim)
	return claim, nil
}

// Process moves a new claim into processing.
func (s *ClaimService) Process(ctx context.Context, id string) (*models.Claim, error) {
	return s.transition(ctx, id, models.ClaimStatusProcessing, "", models.AuditActionStatusChange)
}

// Approve marks a claim approved and stamps the processor.
func (s *ClaimService) Approve(ctx context.Context, id, processorID string) (*models.Claim, error) {
	return s.transition(ctx, id, models.ClaimStatusApproved, processorID, models.AuditActionApprove)
}

// Reject marks a claim rejected with a mandatory note and stamps the processor.
func (s *ClaimService) Reject(ctx context.Context, id, processorID, note string) (*models.Claim, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "rejection note is required")
	}
	return s.transitionWith(ctx, id, models.ClaimStatusRejected, processorID, models.AuditActionReject, func(c *models.Claim) {
		c.Notes = &note
	})
}

func (s *ClaimService) transition(ctx context.Context, id string, next models.ClaimStatus, processorID, action string) (*models.Claim, error) {
	return s.transitionWith(ctx, id, next, processorID, action, nil)
}

func (s *ClaimService) transitionWith(ctx context.Context, id string, next models.ClaimStatus, processorID, action string, mutate func(*models.Claim)) (*models.Claim, error) {
	claim, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, entityClaim)
	}
	if !claim.Status.CanTransitionTo(next) {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition,
			"claim cannot move from "+string(claim.Status)+" to "+string(next))
	}
	stampsProcessor := next == models.ClaimStatusApproved || next == models.ClaimStatusRejected
	if stampsProcessor && processorID == "" {
		processorID = actorID(ctx)
		if processorID == "" {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "a processor is required to move a claim to "+string(next))
		}
	}
	previous := claim.Status
	claim.Status = next
	if stampsProcessor {
		processed := s.now().UTC()
		claim.ProcessedDate = &processed
		claim.ProcessedBy = &processorID
	}
	if mutate != nil {
		mutate(claim)
	}
	if err := s.repo.Update(ctx, claim); err != nil {
		return nil, writeError(err, "update", entityClaim)
	}
	s.audit.Log(ctx, action, entityClaim, id,
		map[string]string{"status": string(previous)},
		map[string]string{"status": string(next)})
	return claim, nil
}

// Delete removes a claim.
func (s *ClaimService) Delete(ctx context.Context, id string) error {
	claim, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return loadError(err, entityClaim)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "delete", entityClaim)
	}
	s.audit.Log(ctx, models.AuditActionDelete, entityClaim, id, claim, nil)
	return nil
}

// Stats summarises all claims.
func (s *ClaimService) Stats(ctx context.Context) (*dto.ClaimStats, error) {
	claims, err := s.repo.List(ctx, models.ClaimFilter{})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load claim stats")
	}
	stats := ClaimStatsOf(claims)
	return &stats, nil
}
