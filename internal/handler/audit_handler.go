package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/funeral-admin-api/internal/models"
	appErrors "github.com/noah-isme/funeral-admin-api/pkg/errors"
	"github.com/noah-isme/funeral-admin-api/pkg/response"
)

type auditReader interface {
	List(ctx context.Context, filter models.AuditFilter) ([]models.AuditLog, error)
	ByEntity(ctx context.Context, entityType, entityID string) ([]models.AuditLog, error)
	ByUser(ctx context.Context, userID string) ([]models.AuditLog, error)
	ByAction(ctx context.Context, action string) ([]models.AuditLog, error)
	Search(ctx context.Context, term string) ([]models.AuditLog, error)
	Recent(ctx context.Context) ([]models.AuditLog, error)
}

// AuditHandler serves the audit trail viewer.
type AuditHandler struct {
	audit auditReader
}

// NewAuditHandler constructs AuditHandler.
func NewAuditHandler(audit auditReader) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List godoc
// @Summary Audit trail
// @Tags Audit
// @Produce json
// @Param entity_type query string false "Entity type"
// @Param entity_id query string false "Entity ID"
// @Param user_id query string false "Acting user"
// @Param action query string false "Action"
// @Param search query string false "Substring of action or entity type"
// @Param limit query int false "Maximum entries"
// @Success 200 {object} response.Envelope
// @Router /admin/audit-logs [get]
func (h *AuditHandler) List(c *gin.Context) {
	filter := models.AuditFilter{
		EntityType: strings.TrimSpace(c.Query("entity_type")),
		EntityID:   strings.TrimSpace(c.Query("entity_id")),
		UserID:     strings.TrimSpace(c.Query("user_id")),
		Action:     strings.TrimSpace(c.Query("action")),
		Search:     c.Query("search"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "limit must be a positive number"))
			return
		}
		filter.Limit = limit
	}
	h.respond(c, func(ctx context.Context) ([]models.AuditLog, error) { return h.audit.List(ctx, filter) })
}

// Recent godoc
// @Summary Latest audit entries
// @Tags Audit
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/audit-logs/recent [get]
func (h *AuditHandler) Recent(c *gin.Context) {
	h.respond(c, h.audit.Recent)
}

// ByEntity godoc
// @Summary Audit trail of one record
// @Tags Audit
// @Produce json
// @Param type path string true "Entity type"
// @Param id path string true "Entity ID"
// @Success 200 {object} response.Envelope
// @Router /admin/audit-logs/entity/{type}/{id} [get]
func (h *AuditHandler) ByEntity(c *gin.Context) {
	h.respond(c, func(ctx context.Context) ([]models.AuditLog, error) {
		return h.audit.ByEntity(ctx, c.Param("type"), c.Param("id"))
	})
}

// ByUser godoc
// @Summary Audit entries recorded for one user
// @Tags Audit
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} response.Envelope
// @Router /admin/audit-logs/user/{userId} [get]
func (h *AuditHandler) ByUser(c *gin.Context) {
	h.respond(c, func(ctx context.Context) ([]models.AuditLog, error) {
		return h.audit.ByUser(ctx, c.Param("userId"))
	})
}

// ByAction godoc
// @Summary Audit entries for one action
// @Tags Audit
// @Produce json
// @Param action path string true "Action"
// @Success 200 {object} response.Envelope
// @Router /admin/audit-logs/action/{action} [get]
func (h *AuditHandler) ByAction(c *gin.Context) {
	h.respond(c, func(ctx context.Context) ([]models.AuditLog, error) {
		return h.audit.ByAction(ctx, c.Param("action"))
	})
}

// Search godoc
// @Summary Search audit entries
// @Tags Audit
// @Produce json
// @Param q query string true "Substring of action or entity type"
// @Success 200 {object} response.Envelope
// @Router /admin/audit-logs/search [get]
func (h *AuditHandler) Search(c *gin.Context) {
	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "q is required"))
		return
	}
	h.respond(c, func(ctx context.Context) ([]models.AuditLog, error) { return h.audit.Search(ctx, term) })
}

func (h *AuditHandler) respond(c *gin.Context, load func(ctx context.Context) ([]models.AuditLog, error)) {
	entries, err := load(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}
