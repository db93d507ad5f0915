package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/funeral-admin-api/internal/models"
)

const staffColumns = `id, user_id, employee_number, first_name, last_name, phone, email, role, status, completion_rate, created_at, updated_at`

// StaffSearchColumns are matched by the free-text staff search.
var StaffSearchColumns = []string{"first_name", "last_name", "employee_number", "role", "email"}

// StaffRepository manages employees.
type StaffRepository struct {
	db *sqlx.DB
}

// NewStaffRepository constructs a StaffRepository.
func NewStaffRepository(db *sqlx.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

// List returns staff matching the filter, newest first.
func (r *StaffRepository) List(ctx context.Context, filter models.StaffFilter) ([]models.Staff, error) {
	w := newWhere()
	w.eq("status", string(filter.Status))
	w.eq("role", filter.Role)
	w.eq("user_id", filter.UserID)
	w.search(filter.Search, StaffSearchColumns...)

	query := fmt.Sprintf("SELECT %s FROM staff %s ORDER BY created_at DESC", staffColumns, w)
	staff := make([]models.Staff, 0)
	if err := r.db.SelectContext(ctx, &staff, query, w.args...); err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	return staff, nil
}

// FindByID fetches a staff member by ID.
func (r *StaffRepository) FindByID(ctx context.Context, id string) (*models.Staff, error) {
	query := fmt.Sprintf("SELECT %s FROM staff WHERE id = $1", staffColumns)
	var member models.Staff
	if err := r.db.GetContext(ctx, &member, query, id); err != nil {
		return nil, err
	}
	return &member, nil
}

// FindByUserID fetches the staff profile linked to an auth account.
func (r *StaffRepository) FindByUserID(ctx context.Context, userID string) (*models.Staff, error) {
	query := fmt.Sprintf("SELECT %s FROM staff WHERE user_id = $1 LIMIT 1", staffColumns)
	var member models.Staff
	if err := r.db.GetContext(ctx, &member, query, userID); err != nil {
		return nil, err
	}
	return &member, nil
}

// Create inserts a new staff member.
func (r *StaffRepository) Create(ctx context.Context, member *models.Staff) error {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if member.CreatedAt.IsZero() {
		member.CreatedAt = now
	}
	member.UpdatedAt = now
	const query = `INSERT INTO staff (id, user_id, employee_number, first_name, last_name, phone, email, role, status, completion_rate, created_at, updated_at)
        VALUES (:id, :user_id, :employee_number, :first_name, :last_name, :phone, :email, :role, :status, :completion_rate, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, member); err != nil {
		return fmt.Errorf("create staff: %w", err)
	}
	return nil
}

// Update overwrites the mutable fields of a staff member.
func (r *StaffRepository) Update(ctx context.Context, member *models.Staff) error {
	member.UpdatedAt = time.Now().UTC()
	const query = `UPDATE staff SET user_id = :user_id, first_name = :first_name, last_name = :last_name, phone = :phone, email = :email, role = :role,
        status = :status, completion_rate = :completion_rate, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, member)
	if err != nil {
		return fmt.Errorf("update staff: %w", err)
	}
	return ensureAffected(res)
}

// UpdateStatus sets the availability status.
func (r *StaffRepository) UpdateStatus(ctx context.Context, id string, status models.StaffStatus) error {
	const query = `UPDATE staff SET status = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update staff status: %w", err)
	}
	return ensureAffected(res)
}

// Delete removes a staff member.
func (r *StaffRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM staff WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete staff: %w", err)
	}
	return ensureAffected(res)
}
