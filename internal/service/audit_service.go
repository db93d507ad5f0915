package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/noah-isme/funeral-admin-api/internal/models"
	appErrors "github.com/noah-isme/funeral-admin-api/pkg/errors"
	"github.com/noah-isme/funeral-admin-api/pkg/jobs"
)

const auditJobType = "audit_log"

type auditRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, filter models.AuditFilter) ([]models.AuditLog, error)
}

// AuditServiceConfig sizes the background writer.
type AuditServiceConfig struct {
	Workers    int
	BufferSize int
	Retries    int
}

// AuditService records mutations without holding up the caller and serves the audit viewer.
type AuditService struct {
	repo    auditRepository
	queue   *jobs.Queue
	metrics *MetricsService
	logger  *zap.Logger
}

// NewAuditService builds the audit logger. Entries are only written once Start is called.
func NewAuditService(repo auditRepository, metrics *MetricsService, cfg AuditServiceConfig, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &AuditService{repo: repo, metrics: metrics, logger: logger}
	s.queue = jobs.NewQueue("audit", s.persist, jobs.QueueConfig{
		Workers:    cfg.Workers,
		BufferSize: cfg.BufferSize,
		MaxRetries: cfg.Retries,
		Logger:     logger,
	})
	return s
}

// Start launches the background writers.
func (s *AuditService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop flushes queued entries and stops the writers.
func (s *AuditService) Stop() {
	s.queue.Stop()
}

// Log records an action by the actor on ctx. Calls without an actor are skipped. The entry is
// queued and written in the background; failures are logged and never reach the caller.
func (s *AuditService) Log(ctx context.Context, action, entityType, entityID string, oldValues, newValues interface{}) {
	userID := actorID(ctx)
	if userID == "" {
		s.logger.Debug("audit skipped without actor",
			zap.String("action", action),
			zap.String("entity_type", entityType),
			zap.String("entity_id", entityID),
		)
		return
	}

	entry := &models.AuditLog{
		ID:         uuid.NewString(),
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		OldValues:  s.snapshot(oldValues),
		NewValues:  s.snapshot(newValues),
	}
	if err := s.queue.Enqueue(jobs.Job{ID: entry.ID, Type: auditJobType, Payload: entry}); err != nil {
		s.metrics.RecordAuditDropped()
		s.logger.Warn("audit entry dropped",
			zap.String("action", action),
			zap.String("entity_type", entityType),
			zap.String("entity_id", entityID),
			zap.Error(err),
		)
	}
}

func (s *AuditService) persist(ctx context.Context, job jobs.Job) error {
	entry, ok := job.Payload.(*models.AuditLog)
	if !ok {
		s.logger.Warn("unexpected audit payload", zap.String("job_id", job.ID))
		return nil
	}
	return s.repo.Create(ctx, entry)
}

func (s *AuditService) snapshot(value interface{}) types.JSONText {
	if value == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("audit snapshot not serialisable", zap.Error(err))
		return nil
	}
	return types.JSONText(raw)
}

// List returns audit entries matching the filter, newest first.
func (s *AuditService) List(ctx context.Context, filter models.AuditFilter) ([]models.AuditLog, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list audit logs")
	}
	return entries, nil
}

// ByEntity returns the trail of one record.
func (s *AuditService) ByEntity(ctx context.Context, entityType, entityID string) ([]models.AuditLog, error) {
	return s.List(ctx, models.AuditFilter{EntityType: entityType, EntityID: entityID})
}

// ByUser returns everything one user did.
func (s *AuditService) ByUser(ctx context.Context, userID string) ([]models.AuditLog, error) {
	return s.List(ctx, models.AuditFilter{UserID: userID})
}

// ByAction returns entries for one action verb.
func (s *AuditService) ByAction(ctx context.Context, action string) ([]models.AuditLog, error) {
	return s.List(ctx, models.AuditFilter{Action: action})
}

// Search matches the term against action and entity type.
func (s *AuditService) Search(ctx context.Context, term string) ([]models.AuditLog, error) {
	return s.List(ctx, models.AuditFilter{Search: term})
}

// Recent returns the latest entries.
func (s *AuditService) Recent(ctx context.Context) ([]models.AuditLog, error) {
	return s.List(ctx, models.AuditFilter{Limit: models.RecentAuditLimit})
}
