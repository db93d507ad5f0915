package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/funeral-admin-api/internal/dto"
	"github.com/noah-isme/funeral-admin-api/internal/models"
	"github.com/noah-isme/funeral-admin-api/internal/service"
	appErrors "github.com/noah-isme/funeral-admin-api/pkg/errors"
	"github.com/noah-isme/funeral-admin-api/pkg/response"
)

type eventService interface {
	List(ctx context.Context, filter models.EventFilter) ([]models.BurialEvent, error)
	Get(ctx context.Context, id string) (*models.BurialEvent, error)
	Create(ctx context.Context, req service.CreateEventRequest) (*models.BurialEvent, error)
	Update(ctx context.Context, id string, req service.UpdateEventRequest) (*models.BurialEvent, error)
	SetStatus(ctx context.Context, id string, status models.EventStatus) error
	Delete(ctx context.Context, id string) error
	ListStaff(ctx context.Context, eventID string) ([]models.EventStaffAssignment, error)
	AssignStaff(ctx context.Context, eventID string, req service.AssignStaffRequest) (*models.EventStaffAssignment, error)
	UnassignStaff(ctx context.Context, eventID, staffID string) error
	Stats(ctx context.Context) (*dto.EventStats, error)
}

// EventHandler exposes burial event endpoints.
type EventHandler struct {
	events eventService
}

// NewEventHandler constructs EventHandler.
func NewEventHandler(events eventService) *EventHandler {
	return &EventHandler{events: events}
}

// List godoc
// @Summary List burial events
// @Tags Events
// @Produce json
// @Param search query string false "Search number, deceased or location"
// @Param status query string false "scheduled, in_progress, completed or cancelled"
// @Param member_id query string false "Member ID"
// @Success 200 {object} response.Envelope
// @Router /admin/events [get]
func (h *EventHandler) List(c *gin.Context) {
	filter := models.EventFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Status:   models.EventStatus(models.NormalizeFilter(c.Query("status"))),
		MemberID: strings.TrimSpace(c.Query("member_id")),
	}
	events, err := h.events.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, nil)
}

// Get godoc
// @Summary Get burial event
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /admin/events/{id} [get]
func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.events.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}

// Create godoc
// @Summary Schedule burial event
// @Description When generate_checklist is set and generation fails the event is still created
// @Description and the failure is reported in meta.checklist_error.
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body service.CreateEventRequest true "Event payload"
// @Success 201 {object} response.Envelope
// @Router /admin/events [post]
func (h *EventHandler) Create(c *gin.Context) {
	var req service.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	event, err := h.events.Create(c.Request.Context(), req)
	if err != nil {
		if event == nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusCreated, event, nil, map[string]interface{}{
			"checklist_error": appErrors.FromError(err).Message,
		})
		return
	}
	response.Created(c, event)
}

// Update godoc
// @Summary Update burial event
// @Tags Events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param payload body service.UpdateEventRequest true "Event payload"
// @Success 200 {object} response.Envelope
// @Router /admin/events/{id} [put]
func (h *EventHandler) Update(c *gin.Context) {
	var req service.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	event, err := h.events.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}

// SetStatus godoc
// @Summary Change event status
// @Tags Events
// @Accept json
// @Param id path string true "Event ID"
// @Param payload body handler.statusRequest true "New status"
// @Success 204
// @Router /admin/events/{id}/status [patch]
func (h *EventHandler) SetStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	if err := h.events.SetStatus(c.Request.Context(), c.Param("id"), models.EventStatus(req.Status)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Delete godoc
// @Summary Delete burial event
// @Tags Events
// @Param id path string true "Event ID"
// @Success 204
// @Router /admin/events/{id} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.events.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListStaff godoc
// @Summary Staff assigned to an event
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /admin/events/{id}/staff [get]
func (h *EventHandler) ListStaff(c *gin.Context) {
	assignments, err := h.events.ListStaff(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignments, nil)
}

// AssignStaff godoc
// @Summary Assign staff to an event
// @Tags Events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param payload body service.AssignStaffRequest true "Staff reference"
// @Success 201 {object} response.Envelope
// @Router /admin/events/{id}/staff [post]
func (h *EventHandler) AssignStaff(c *gin.Context) {
	var req service.AssignStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	assignment, err := h.events.AssignStaff(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assignment)
}

// UnassignStaff godoc
// @Summary Remove staff from an event
// @Tags Events
// @Param id path string true "Event ID"
// @Param staffId path string true "Staff ID"
// @Success 204
// @Router /admin/events/{id}/staff/{staffId} [delete]
func (h *EventHandler) UnassignStaff(c *gin.Context) {
	if err := h.events.UnassignStaff(c.Request.Context(), c.Param("id"), c.Param("staffId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Stats godoc
// @Summary Event statistics
// @Tags Events
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/events/stats [get]
func (h *EventHandler) Stats(c *gin.Context) {
	stats, err := h.events.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}
