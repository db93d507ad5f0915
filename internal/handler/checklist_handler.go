package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/funeral-admin-api/internal/dto"
	"github.com/noah-isme/funeral-admin-api/internal/models"
	"github.com/noah-isme/funeral-admin-api/internal/service"
	appErrors "github.com/noah-isme/funeral-admin-api/pkg/errors"
	"github.com/noah-isme/funeral-admin-api/pkg/response"
)

type checklistService interface {
	List(ctx context.Context, filter models.ChecklistFilter) ([]models.ChecklistItem, error)
	Generate(ctx context.Context, eventID string) ([]models.ChecklistItem, error)
	Toggle(ctx context.Context, id string) (*models.ChecklistItem, error)
	Update(ctx context.Context, id string, req service.UpdateChecklistItemRequest) (*models.ChecklistItem, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*dto.ChecklistStats, error)
}

// ChecklistHandler exposes event checklist endpoints.
type ChecklistHandler struct {
	checklists checklistService
}

// NewChecklistHandler constructs ChecklistHandler.
func NewChecklistHandler(checklists checklistService) *ChecklistHandler {
	return &ChecklistHandler{checklists: checklists}
}

// ListByEvent godoc
// @Summary Checklist of an event
// @Tags Checklist
// @Produce json
// @Param id path string true "Event ID"
// @Param phase query string false "pre_event, during_event or post_event"
// @Param completed query bool false "Completion filter"
// @Success 200 {object} response.Envelope
// @Router /admin/events/{id}/checklist [get]
func (h *ChecklistHandler) ListByEvent(c *gin.Context) {
	filter := models.ChecklistFilter{
		EventID: c.Param("id"),
		Phase:   models.ChecklistPhase(models.NormalizeFilter(c.Query("phase"))),
	}
	if raw := c.Query("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "completed must be a boolean"))
			return
		}
		filter.Completed = &completed
	}
	items, err := h.checklists.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Generate godoc
// @Summary Generate the default checklist for an event
// @Tags Checklist
// @Produce json
// @Param id path string true "Event ID"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/events/{id}/checklist [post]
func (h *ChecklistHandler) Generate(c *gin.Context) {
	items, err := h.checklists.Generate(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, items)
}

// Toggle godoc
// @Summary Toggle checklist item completion
// @Tags Checklist
// @Produce json
// @Param id path string true "Checklist item ID"
// @Success 200 {object} response.Envelope
// @Router /admin/checklist/{id}/toggle [post]
func (h *ChecklistHandler) Toggle(c *gin.Context) {
	item, err := h.checklists.Toggle(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Update godoc
// @Summary Edit checklist item
// @Tags Checklist
// @Accept json
// @Produce json
// @Param id path string true "Checklist item ID"
// @Param payload body service.UpdateChecklistItemRequest true "Item payload"
// @Success 200 {object} response.Envelope
// @Router /admin/checklist/{id} [put]
func (h *ChecklistHandler) Update(c *gin.Context) {
	var req service.UpdateChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	item, err := h.checklists.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Delete godoc
// @Summary Delete checklist item
// @Tags Checklist
// @Param id path string true "Checklist item ID"
// @Success 204
// @Router /admin/checklist/{id} [delete]
func (h *ChecklistHandler) Delete(c *gin.Context) {
	if err := h.checklists.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Stats godoc
// @Summary Checklist statistics
// @Tags Checklist
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/checklist/stats [get]
func (h *ChecklistHandler) Stats(c *gin.Context) {
	stats, err := h.checklists.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}
