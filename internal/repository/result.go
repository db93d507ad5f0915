package repository

import (
	"database/sql"
	"fmt"
)

// ensureAffected reports sql.ErrNoRows when a write matched no row.
func ensureAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
