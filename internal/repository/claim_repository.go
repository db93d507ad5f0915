package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/funeral-admin-api/internal/models"
)

const claimColumns = `id, claim_number, member_id, attending_member_id, deceased_name, amount, status, submitted_date, processed_date, processed_by, notes, created_at, updated_at`

// ClaimSearchColumns are matched by the free-text claim search.
var ClaimSearchColumns = []string{"claim_number", "deceased_name", "notes"}

// ClaimRepository manages payout claims.
type ClaimRepository struct {
	db *sqlx.DB
}

// NewClaimRepository constructs a ClaimRepository.
func NewClaimRepository(db *sqlx.DB) *ClaimRepository {
	return &ClaimRepository{db: db}
}

// List returns claims matching the filter, most recently submitted first.
func (r *ClaimRepository) List(ctx context.Context, filter models.ClaimFilter) ([]models.Claim, error) {
	w := newWhere()
	w.eq("status", string(filter.Status))
	w.eq("member_id", filter.MemberID)
	w.search(filter.Search, ClaimSearchColumns...)

	query := fmt.Sprintf("SELECT %s FROM claims %s ORDER BY submitted_date DESC", claimColumns, w)
	claims := make([]models.Claim, 0)
	if err := r.db.SelectContext(ctx, &claims, query, w.args...); err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	return claims, nil
}

// FindByID fetches a claim by ID.
func (r *ClaimRepository) FindByID(ctx context.Context, id string) (*models.Claim, error) {
	query := fmt.Sprintf("SELECT %s FROM claims WHERE id = $1", claimColumns)
	var claim models.Claim
	if err := r.db.GetContext(ctx, &claim, query, id); err != nil {
		return nil, err
	}
	return &claim, nil
}

// Create inserts a new claim.
func (r *ClaimRepository) Create(ctx context.Context, claim *models.Claim) error {
	if claim.ID == "" {
		claim.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if claim.CreatedAt.IsZero() {
		claim.CreatedAt = now
	}
	if claim.SubmittedDate.IsZero() {
		claim.SubmittedDate = now
	}
	claim.UpdatedAt = now
	const query = `INSERT INTO claims (id, claim_number, member_id, attending_member_id, deceased_name, amount, status, submitted_date, processed_date, processed_by, notes, created_at, updated_at)
        VALUES (:id, :claim_number, :member_id, :attending_member_id, :deceased_name, :amount, :status, :submitted_date, :processed_date, :processed_by, :notes, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, claim); err != nil {
		return fmt.Errorf("create claim: %w", err)
	}
	return nil
}

// Update overwrites the mutable fields of a claim, including its processing stamp.
func (r *ClaimRepository) Update(ctx context.Context, claim *models.Claim) error {
	claim.UpdatedAt = time.Now().UTC()
	const query = `UPDATE claims SET member_id = :member_id, attending_member_id = :attending_member_id, deceased_name = :deceased_name, amount = :amount, status = :status,
        processed_date = :processed_date, processed_by = :processed_by, notes = :notes, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, claim)
	if err != nil {
		return fmt.Errorf("update claim: %w", err)
	}
	return ensureAffected(res)
}

// Delete removes a claim.
func (r *ClaimRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM claims WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete claim: %w", err)
	}
	return ensureAffected(res)
}
