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

const entityStaff = "staff"

type staffRepository interface {
	List(ctx context.Context, filter models.StaffFilter) ([]models.Staff, error)
	FindByID(ctx context.Context, id string) (*models.Staff, error)
	FindByUserID(ctx context.Context, userID string) (*models.Staff, error)
	Create(ctx context.Context, member *models.Staff) error
	Update(ctx context.Context, member *models.Staff) error
	UpdateStatus(ctx context.Context, id string, status models.StaffStatus) error
	Delete(ctx context.Context, id string) error
}

// CreateStaffRequest holds the payload for adding an employee.
type CreateStaffRequest struct {
	UserID         *string            `json:"user_id"`
	FirstName      string             `json:"first_name" validate:"required"`
	LastName       string             `json:"last_name" validate:"required"`
	Phone          string             `json:"phone" validate:"required"`
	Email          *string            `json:"email" validate:"omitempty,email"`
	Role           string             `json:"role" validate:"required"`
	Status         models.StaffStatus `json:"status" validate:"omitempty,oneof=available on_assignment off_duty"`
	CompletionRate float64            `json:"completion_rate" validate:"gte=0,lte=100"`
}

// UpdateStaffRequest carries a partial staff update.
type UpdateStaffRequest struct {
	UserID         *string             `json:"user_id"`
	FirstName      *string             `json:"first_name" validate:"omitempty,min=1"`
	LastName       *string             `json:"last_name" validate:"omitempty,min=1"`
	Phone          *string             `json:"phone"`
	Email          *string             `json:"email" validate:"omitempty,email"`
	Role           *string             `json:"role" validate:"omitempty,min=1"`
	Status         *models.StaffStatus `json:"status" validate:"omitempty,oneof=available on_assignment off_duty"`
	CompletionRate *float64            `json:"completion_rate" validate:"omitempty,gte=0,lte=100"`
}

// StaffService handles staff use-cases.
type StaffService struct {
	repo      staffRepository
	audit     auditRecorder
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewStaffService constructs the staff service.
func NewStaffService(repo staffRepository, audit auditRecorder, validate *validator.Validate, logger *zap.Logger) *StaffService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StaffService{repo: repo, audit: auditOrNoop(audit), validator: validate, logger: logger, now: time.Now}
}

// List returns every staff member matching the filter.
func (s *StaffService) List(ctx context.Context, filter models.StaffFilter) ([]models.Staff, error) {
	staff, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list staff")
	}
	return staff, nil
}

// Get returns a staff member by ID.
func (s *StaffService) Get(ctx context.Context, id string) (*models.Staff, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, entityStaff)
	}
	return member, nil
}

// FindByUserID returns the staff profile linked to an auth account.
func (s *StaffService) FindByUserID(ctx context.Context, userID string) (*models.Staff, error) {
	member, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, loadError(err, entityStaff)
	}
	return member, nil
}

// Create adds an employee with a generated employee number.
func (s *StaffService) Create(ctx context.Context, req CreateStaffRequest) (*models.Staff, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid staff payload")
	}
	member := &models.Staff{
		UserID:         optionalString(req.UserID),
		EmployeeNumber: generateNumber(StaffNumberPrefix, s.now()),
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Phone:          strings.TrimSpace(req.Phone),
		Email:          optionalString(req.Email),
		Role:           strings.TrimSpace(req.Role),
		Status:         req.Status,
		CompletionRate: req.CompletionRate,
	}
	if member.Status == "" {
		member.Status = models.StaffStatusAvailable
	}
	if err := s.repo.Create(ctx, member); err != nil {
		return nil, appErrors.Internal(err, "failed to create staff")
	}
	s.audit.Log(ctx, models.AuditActionCreate, entityStaff, member.ID, nil, member)
	return member, nil
}

// Update applies a partial update.
func (s *StaffService) Update(ctx context.Context, id string, req UpdateStaffRequest) (*models.Staff, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid staff payload")
	}
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, entityStaff)
	}
	before := *member

	if req.UserID != nil {
		member.UserID = optionalString(req.UserID)
	}
	if req.FirstName != nil {
		member.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		member.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Phone != nil {
		member.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		member.Email = optionalString(req.Email)
	}
	if req.Role != nil {
		member.Role = strings.TrimSpace(*req.Role)
	}
	if req.Status != nil {
		member.Status = *req.Status
	}
	if req.CompletionRate != nil {
		member.CompletionRate = *req.CompletionRate
	}

	if err := s.repo.Update(ctx, member); err != nil {
		return nil, writeError(err, "update", entityStaff)
	}
	s.audit.Log(ctx, models.AuditActionUpdate, entityStaff, id, before, member)
	return member, nil
}

// SetStatus moves a staff member to a new availability status.
func (s *StaffService) SetStatus(ctx context.Context, id string, status models.StaffStatus) error {
	switch status {
	case models.StaffStatusAvailable, models.StaffStatusOnAssignment, models.StaffStatusOffDuty:
	default:
		return appErrors.Clone(appErrors.ErrValidation, "invalid staff status")
	}
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return loadError(err, entityStaff)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return writeError(err, "update", entityStaff)
	}
	s.audit.Log(ctx, models.AuditActionStatusChange, entityStaff, id,
		map[string]string{"status": string(member.Status)},
		map[string]string{"status": string(status)})
	return nil
}

// Delete removes a staff member.
func (s *StaffService) Delete(ctx context.Context, id string) error {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return loadError(err, entityStaff)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "delete", entityStaff)
	}
	s.audit.Log(ctx, models.AuditActionDelete, entityStaff, id, member, nil)
	return nil
}

// Stats summarises all staff.
func (s *StaffService) Stats(ctx context.Context) (*dto.StaffStats, error) {
	staff, err := s.repo.List(ctx, models.StaffFilter{})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load staff stats")
	}
	stats := StaffStatsOf(staff)
	return &stats, nil
}
