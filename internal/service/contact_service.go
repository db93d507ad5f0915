package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/funeral-admin-api/internal/dto"
	"github.com/noah-isme/funeral-admin-api/internal/models"
	appErrors "github.com/noah-isme/funeral-admin-api/pkg/errors"
)

const entityContact = "contact"

type contactRepository interface {
	List(ctx context.Context, filter models.ContactFilter) ([]models.Contact, error)
	FindByID(ctx context.Context, id string) (*models.Contact, error)
	Create(ctx context.Context, contact *models.Contact) error
	Update(ctx context.Context, contact *models.Contact) error
	Delete(ctx context.Context, id string) error
}

// ContactRequest is the full contact payload used for create and update.
type ContactRequest struct {
	Name             string             `json:"name" validate:"required"`
	Type             models.ContactType `json:"type" validate:"required,oneof=member attending_member staff supplier"`
	Relationship     *string            `json:"relationship"`
	Phone            string             `json:"phone" validate:"required"`
	Email            *string            `json:"email" validate:"omitempty,email"`
	Address          *string            `json:"address"`
	AssociatedEvents int                `json:"associated_events" validate:"gte=0"`
}

// ContactService manages the contact directory.
type ContactService struct {
	repo      contactRepository
	audit     auditRecorder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewContactService constructs the contact service.
func NewContactService(repo contactRepository, audit auditRecorder, validate *validator.Validate, logger *zap.Logger) *ContactService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactService{repo: repo, audit: auditOrNoop(audit), validator: validate, logger: logger}
}

// List returns contacts matching the filter.
func (s *ContactService) List(ctx context.Context, filter models.ContactFilter) ([]models.Contact, error) {
	contacts, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list contacts")
	}
	return contacts, nil
}

// Get returns a contact by ID.
func (s *ContactService) Get(ctx context.Context, id string) (*models.Contact, error) {
	contact, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, entityContact)
	}
	return contact, nil
}

// Create adds a contact.
func (s *ContactService) Create(ctx context.Context, req ContactRequest) (*models.Contact, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid contact payload")
	}
	contact := &models.Contact{}
	applyContact(contact, req)
	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, appErrors.Internal(err, "failed to create contact")
	}
	s.audit.Log(ctx, models.AuditActionCreate, entityContact, contact.ID, nil, contact)
	return contact, nil
}

// Update replaces a contact's fields.
func (s *ContactService) Update(ctx context.Context, id string, req ContactRequest) (*models.Contact, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid contact payload")
	}
	contact, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, entityContact)
	}
	before := *contact
	applyContact(contact, req)
	if err := s.repo.Update(ctx, contact); err != nil {
		return nil, writeError(err, "update", entityContact)
	}
	s.audit.Log(ctx, models.AuditActionUpdate, entityContact, id, before, contact)
	return contact, nil
}

// Delete removes a contact.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	contact, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return loadError(err, entityContact)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "delete", entityContact)
	}
	s.audit.Log(ctx, models.AuditActionDelete, entityContact, id, contact, nil)
	return nil
}

// Stats summarises all contacts.
func (s *ContactService) Stats(ctx context.Context) (*dto.ContactStats, error) {
	contacts, err := s.repo.List(ctx, models.ContactFilter{})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load contact stats")
	}
	stats := ContactStatsOf(contacts)
	return &stats, nil
}

func applyContact(contact *models.Contact, req ContactRequest) {
	contact.Name = strings.TrimSpace(req.Name)
	contact.Type = req.Type
	contact.Relationship = optionalString(req.Relationship)
	contact.Phone = strings.TrimSpace(req.Phone)
	contact.Email = optionalString(req.Email)
	contact.Address = optionalString(req.Address)
	contact.AssociatedEvents = req.AssociatedEvents
}
