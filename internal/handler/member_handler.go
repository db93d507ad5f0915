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

type memberService interface {
	List(ctx context.Context, filter models.MemberFilter) ([]models.Member, error)
	Get(ctx context.Context, id string) (*models.Member, error)
	Create(ctx context.Context, req service.CreateMemberRequest) (*models.Member, error)
	Update(ctx context.Context, id string, req service.UpdateMemberRequest) (*models.Member, error)
	SetStatus(ctx context.Context, id string, status models.MemberStatus) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*dto.MemberStats, error)
}

// MemberHandler exposes member endpoints.
type MemberHandler struct {
	members memberService
}

// NewMemberHandler constructs MemberHandler.
func NewMemberHandler(members memberService) *MemberHandler {
	return &MemberHandler{members: members}
}

// List godoc
// @Summary List members
// @Tags Members
// @Produce json
// @Param search query string false "Search name, number, phone or email"
// @Param status query string false "active, suspended or cancelled"
// @Param tier query string false "bronze, silver or gold"
// @Success 200 {object} response.Envelope
// @Router /admin/members [get]
func (h *MemberHandler) List(c *gin.Context) {
	filter := models.MemberFilter{
		Search: strings.TrimSpace(c.Query("search")),
		Status: models.MemberStatus(models.NormalizeFilter(c.Query("status"))),
		Tier:   models.PolicyTier(models.NormalizeFilter(c.Query("tier"))),
	}
	members, err := h.members.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, members, nil)
}

// Get godoc
// @Summary Get member
// @Tags Members
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.Envelope
// @Router /admin/members/{id} [get]
func (h *MemberHandler) Get(c *gin.Context) {
	member, err := h.members.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, member, nil)
}

// Create godoc
// @Summary Register member
// @Tags Members
// @Accept json
// @Produce json
// @Param payload body service.CreateMemberRequest true "Member payload"
// @Success 201 {object} response.Envelope
// @Router /admin/members [post]
func (h *MemberHandler) Create(c *gin.Context) {
	var req service.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	member, err := h.members.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, member)
}

// Update godoc
// @Summary Update member
// @Tags Members
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Param payload body service.UpdateMemberRequest true "Member payload"
// @Success 200 {object} response.Envelope
// @Router /admin/members/{id} [put]
func (h *MemberHandler) Update(c *gin.Context) {
	var req service.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	member, err := h.members.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, member, nil)
}

// SetStatus godoc
// @Summary Change member status
// @Tags Members
// @Accept json
// @Param id path string true "Member ID"
// @Param payload body handler.statusRequest true "New status"
// @Success 204
// @Router /admin/members/{id}/status [patch]
func (h *MemberHandler) SetStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	if err := h.members.SetStatus(c.Request.Context(), c.Param("id"), models.MemberStatus(req.Status)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Delete godoc
// @Summary Delete member
// @Tags Members
// @Param id path string true "Member ID"
// @Success 204
// @Router /admin/members/{id} [delete]
func (h *MemberHandler) Delete(c *gin.Context) {
	if err := h.members.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Stats godoc
// @Summary Member statistics
// @Tags Members
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/members/stats [get]
func (h *MemberHandler) Stats(c *gin.Context) {
	stats, err := h.members.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}
