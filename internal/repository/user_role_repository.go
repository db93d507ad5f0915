package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/funeral-admin-api/internal/models"
)

// UserRoleRepository maps auth accounts to application roles.
type UserRoleRepository struct {
	db *sqlx.DB
}

// NewUserRoleRepository constructs a UserRoleRepository.
func NewUserRoleRepository(db *sqlx.DB) *UserRoleRepository {
	return &UserRoleRepository{db: db}
}

// FindRole returns the role assigned to a user. sql.ErrNoRows means none.
func (r *UserRoleRepository) FindRole(ctx context.Context, userID string) (models.UserRole, error) {
	var role models.UserRole
	if err := r.db.GetContext(ctx, &role, `SELECT role FROM user_roles WHERE user_id = $1 LIMIT 1`, userID); err != nil {
		return "", err
	}
	return role, nil
}

// AssignRole upserts the user's role.
func (r *UserRoleRepository) AssignRole(ctx context.Context, userID string, role models.UserRole) error {
	const query = `INSERT INTO user_roles (user_id, role, created_at) VALUES ($1, $2, $3)
        ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role`
	if _, err := r.db.ExecContext(ctx, query, userID, role, time.Now().UTC()); err != nil {
		return fmt.Errorf("assign role: %w", err)
	}
	return nil
}
