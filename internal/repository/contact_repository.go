package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/funeral-admin-api/internal/models"
)

const contactColumns = `id, name, type, relationship, phone, email, address, associated_events, created_at, updated_at`

// ContactSearchColumns are matched by the free-text contact search.
var ContactSearchColumns = []string{"name", "relationship", "phone", "email"}

// ContactRepository manages the contact directory.
type ContactRepository struct {
	db *sqlx.DB
}

// NewContactRepository constructs a ContactRepository.
func NewContactRepository(db *sqlx.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// List returns contacts matching the filter ordered by name.
func (r *ContactRepository) List(ctx context.Context, filter models.ContactFilter) ([]models.Contact, error) {
	w := newWhere()
	w.eq("type", string(filter.Type))
	w.search(filter.Search, ContactSearchColumns...)

	query := fmt.Sprintf("SELECT %s FROM contacts %s ORDER BY name ASC", contactColumns, w)
	contacts := make([]models.Contact, 0)
	if err := r.db.SelectContext(ctx, &contacts, query, w.args...); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

// FindByID fetches a contact by ID.
func (r *ContactRepository) FindByID(ctx context.Context, id string) (*models.Contact, error) {
	query := fmt.Sprintf("SELECT %s FROM contacts WHERE id = $1", contactColumns)
	var contact models.Contact
	if err := r.db.GetContext(ctx, &contact, query, id); err != nil {
		return nil, err
	}
	return &contact, nil
}

// Create inserts a contact.
func (r *ContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	if contact.ID == "" {
		contact.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = now
	}
	contact.UpdatedAt = now
	const query = `INSERT INTO contacts (id, name, type, relationship, phone, email, address, associated_events, created_at, updated_at)
        VALUES (:id, :name, :type, :relationship, :phone, :email, :address, :associated_events, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, contact); err != nil {
		return fmt.Errorf("create contact: %w", err)
	}
	return nil
}

// Update overwrites a contact.
func (r *ContactRepository) Update(ctx context.Context, contact *models.Contact) error {
	contact.UpdatedAt = time.Now().UTC()
	const query = `UPDATE contacts SET name = :name, type = :type, relationship = :relationship, phone = :phone, email = :email, address = :address,
        associated_events = :associated_events, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, contact)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	return ensureAffected(res)
}

// Delete removes a contact.
func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return ensureAffected(res)
}
