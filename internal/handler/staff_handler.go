package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/funeral-admin-api/internal/dto"
	"github.com/noah-isme/funeral-admin-api/internal/models"
	"github.com/noah-isme/funeral-admin-api/internal/service"
	"github.com/noah-isme/funeral-admin-api/pkg/response"
)

type staffService interface {
	List(ctx context.Context, filter models.StaffFilter) ([]models.Staff, error)
	Get(ctx context.Context, id string) (*models.Staff, error)
	Create(ctx context.Context, req service.CreateStaffRequest) (*models.Staff, error)
	Update(ctx context.Context, id string, req service.UpdateStaffRequest) (*models.Staff, error)
	SetStatus(ctx context.Context, id string, status models.StaffStatus) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*dto.StaffStats, error)
}

// StaffHandler exposes staff endpoints.
type StaffHandler struct {
	staff staffService
}

// NewStaffHandler constructs StaffHandler.
func NewStaffHandler(staff staffService) *StaffHandler {
	return &StaffHandler{staff: staff}
}

// List godoc
// @Summary List staff
// @Tags Staff
// @Produce json
// @Param search query string false "Search name, number, role or email"
// @Param status query string false "available, on_assignment or off_duty"
// @Param role query string false "Role"
// @Success 200 {object} response.Envelope
// @Router /admin/staff [get]
func (h *StaffHandler) List(c *gin.Context) {
	filter := models.StaffFilter{
		Search: strings.TrimSpace(c.Query("search")),
		Status: models.StaffStatus(models.NormalizeFilter(c.Query("status"))),
		Role:   models.NormalizeFilter(c.Query("role")),
	}
	staff, err := h.staff.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, staff, nil)
}

// Get godoc
// @Summary Get staff member
// @Tags Staff
// @Produce json
// @Param id path string true "Staff ID"
// @Success 200 {object} response.Envelope
// @Router /admin/staff/{id} [get]
func (h *StaffHandler) Get(c *gin.Context) {
	member, err := h.staff.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, member, nil)
}

// Create godoc
// @Summary Add staff member
// @Tags Staff
// @Accept json
// @Produce json
// @Param payload body service.CreateStaffRequest true "Staff payload"
// @Success 201 {object} response.Envelope
// @Router /admin/staff [post]
func (h *StaffHandler) Create(c *gin.Context) {
	var req service.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	member, err := h.staff.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, member)
}

// Update godoc
// @Summary Update staff member
// @Tags Staff
// @Accept json
// @Produce json
// @Param id path string true "Staff ID"
// @Param payload body service.UpdateStaffRequest true "Staff payload"
// @Success 200 {object} response.Envelope
// @Router /admin/staff/{id} [put]
func (h *StaffHandler) Update(c *gin.Context) {
	var req service.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	member, err := h.staff.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, member, nil)
}

// SetStatus godoc
// @Summary Change staff availability
// @Tags Staff
// @Accept json
// @Param id path string true "Staff ID"
// @Param payload body handler.statusRequest true "New status"
// @Success 204
// @Router /admin/staff/{id}/status [patch]
func (h *StaffHandler) SetStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	if err := h.staff.SetStatus(c.Request.Context(), c.Param("id"), models.StaffStatus(req.Status)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Delete godoc
// @Summary Delete staff member
// @Tags Staff
// @Param id path string true "Staff ID"
// @Success 204
// @Router /admin/staff/{id} [delete]
func (h *StaffHandler) Delete(c *gin.Context) {
	if err := h.staff.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Stats godoc
// @Summary Staff statistics
// @Tags Staff
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/staff/stats [get]
func (h *StaffHandler) Stats(c *gin.Context) {
	stats, err := h.staff.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}
