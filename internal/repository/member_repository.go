package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/funeral-admin-api/internal/models"
)

const memberColumns = `id, member_number, first_name, last_name, id_number, phone, email, address, policy_tier, cover_amount, status, joined_date, created_at, updated_at`

// MemberSearchColumns are matched by the free-text member search.
var MemberSearchColumns = []string{"first_name", "last_name", "member_number", "phone", "email"}

// MemberRepository manages persistence for policy holders.
type MemberRepository struct {
	db *sqlx.DB
}

// NewMemberRepository constructs a MemberRepository.
func NewMemberRepository(db *sqlx.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// List returns every member matching the filter, newest first.
func (r *MemberRepository) List(ctx context.Context, filter models.MemberFilter) ([]models.Member, error) {
	w := newWhere()
	w.eq("status", string(filter.Status))
	w.eq("policy_tier", string(filter.Tier))
	w.search(filter.Search, MemberSearchColumns...)

	query := fmt.Sprintf("SELECT %s FROM members %s ORDER BY created_at DESC", memberColumns, w)
	members := make([]models.Member, 0)
	if err := r.db.SelectContext(ctx, &members, query, w.args...); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

// FindByID fetches a member by ID.
func (r *MemberRepository) FindByID(ctx context.Context, id string) (*models.Member, error) {
	query := fmt.Sprintf("SELECT %s FROM members WHERE id = $1", memberColumns)
	var member models.Member
	if err := r.db.GetContext(ctx, &member, query, id); err != nil {
		return nil, err
	}
	return &member, nil
}

// ExistsByMemberNumber checks whether a member number is taken, optionally excluding one member.
func (r *MemberRepository) ExistsByMemberNumber(ctx context.Context, number, excludeID string) (bool, error) {
	query := "SELECT 1 FROM members WHERE member_number = $1"
	args := []interface{}{number}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check member number: %w", err)
	}
	return true, nil
}

// Create inserts a new member.
func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if member.CreatedAt.IsZero() {
		member.CreatedAt = now
	}
	if member.JoinedDate.IsZero() {
		member.JoinedDate = now
	}
	member.UpdatedAt = now
	const query = `INSERT INTO members (id, member_number, first_name, last_name, id_number, phone, email, address, policy_tier, cover_amount, status, joined_date, created_at, updated_at)
        VALUES (:id, :member_number, :first_name, :last_name, :id_number, :phone, :email, :address, :policy_tier, :cover_amount, :status, :joined_date, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, member); err != nil {
		return fmt.Errorf("create member: %w", err)
	}
	return nil
}

// Update overwrites the mutable fields of a member.
func (r *MemberRepository) Update(ctx context.Context, member *models.Member) error {
	member.UpdatedAt = time.Now().UTC()
	const query = `UPDATE members SET member_number = :member_number, first_name = :first_name, last_name = :last_name, id_number = :id_number, phone = :phone, email = :email, address = :address,
        policy_tier = :policy_tier, cover_amount = :cover_amount, status = :status, joined_date = :joined_date, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, member)
	if err != nil {
		return fmt.Errorf("update member: %w", err)
	}
	return ensureAffected(res)
}

// UpdateStatus sets the membership status.
func (r *MemberRepository) UpdateStatus(ctx context.Context, id string, status models.MemberStatus) error {
	const query = `UPDATE members SET status = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update member status: %w", err)
	}
	return ensureAffected(res)
}

// Delete hard-deletes a member.
func (r *MemberRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	return ensureAffected(res)
}
