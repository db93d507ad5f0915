package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/noah-isme/funeral-admin-api/internal/models"
	appErrors "github.com/noah-isme/funeral-admin-api/pkg/errors"
)

// Business identifier prefixes.
const (
	EventNumberPrefix = "BE"
	ClaimNumberPrefix = "CLM"
	StaffNumberPrefix = "EMP"
)

// auditRecorder is the write side of the audit trail. Implementations must not block.
type auditRecorder interface {
	Log(ctx context.Context, action, entityType, entityID string, oldValues, newValues interface{})
}

type noopAudit struct{}

func (noopAudit) Log(context.Context, string, string, string, interface{}, interface{}) {}

func auditOrNoop(audit auditRecorder) auditRecorder {
	if audit == nil {
		return noopAudit{}
	}
	return audit
}

// generateNumber builds <PREFIX>-<year>-<4 random digits>. Collisions are not checked.
func generateNumber(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, now.Year(), rand.Intn(10000))
}

// loadError maps a repository read failure onto the API taxonomy.
func loadError(err error, entity string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, entity+" not found")
	}
	return appErrors.Internal(err, "failed to load "+entity)
}

// writeError maps a repository write failure onto the API taxonomy.
func writeError(err error, op, entity string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, entity+" not found")
	}
	return appErrors.Internal(err, fmt.Sprintf("failed to %s %s", op, entity))
}

func validationError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

func actorID(ctx context.Context) string {
	if claims := models.ActorFromContext(ctx); claims != nil {
		return claims.UserID
	}
	return ""
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func optionalString(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func stringValue(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
