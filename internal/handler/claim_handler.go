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

type claimService interface {
	List(ctx context.Context, filter models.ClaimFilter) ([]models.Claim, error)
	Get(ctx context.Context, id string) (*models.Claim, error)
	Create(ctx context.Context, req service.CreateClaimRequest) (*models.Claim, error)
	Update(ctx context.Context, id string, req service.UpdateClaimRequest) (*models.Claim, error)
	Process(ctx context.Context, id string) (*models.Claim, error)
	Approve(ctx context.Context, id, processorID string) (*models.Claim, error)
	Reject(ctx context.Context, id, processorID, note string) (*models.Claim, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*dto.ClaimStats, error)
}

// ClaimHandler exposes claim endpoints.
type ClaimHandler struct {
	claims claimService
}

// NewClaimHandler constructs ClaimHandler.
func NewClaimHandler(claims claimService) *ClaimHandler {
	return &ClaimHandler{claims: claims}
}

// List godoc
// @Summary List claims
// @Tags Claims
// @Produce json
// @Param search query string false "Search number, deceased or notes"
// @Param status query string false "new, processing, approved or rejected"
// @Param member_id query string false "Member ID"
// @Success 200 {object} response.Envelope
// @Router /admin/claims [get]
func (h *ClaimHandler) List(c *gin.Context) {
	filter := models.ClaimFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Status:   models.ClaimStatus(models.NormalizeFilter(c.Query("status"))),
		MemberID: strings.TrimSpace(c.Query("member_id")),
	}
	claims, err := h.claims.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, claims, nil)
}

// Get godoc
// @Summary Get claim
// @Tags Claims
// @Produce json
// @Param id path string true "Claim ID"
// @Success 200 {object} response.Envelope
// @Router /admin/claims/{id} [get]
func (h *ClaimHandler) Get(c *gin.Context) {
	claim, err := h.claims.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, claim, nil)
}

// Create godoc
// @Summary Lodge claim
// @Tags Claims
// @Accept json
// @Produce json
// @Param payload body service.CreateClaimRequest true "Claim payload"
// @Success 201 {object} response.Envelope
// @Router /admin/claims [post]
func (h *ClaimHandler) Create(c *gin.Context) {
	var req service.CreateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	claim, err := h.claims.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, claim)
}

// Update godoc
// @Summary Update claim details
// @Tags Claims
// @Accept json
// @Produce json
// @Param id path string true "Claim ID"
// @Param payload body service.UpdateClaimRequest true "Claim payload"
// @Success 200 {object} response.Envelope
// @Router /admin/claims/{id} [put]
func (h *ClaimHandler) Update(c *gin.Context) {
	var req service.UpdateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	claim, err := h.claims.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, claim, nil)
}

// Process godoc
// @Summary Start processing a claim
// @Tags Claims
// @Produce json
// @Param id path string true "Claim ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/claims/{id}/process [post]
func (h *ClaimHandler) Process(c *gin.Context) {
	claim, err := h.claims.Process(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, claim, nil)
}

// Approve godoc
// @Summary Approve a claim
// @Tags Claims
// @Produce json
// @Param id path string true "Claim ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/claims/{id}/approve [post]
func (h *ClaimHandler) Approve(c *gin.Context) {
	claim, err := h.claims.Approve(c.Request.Context(), c.Param("id"), processorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, claim, nil)
}

// Reject godoc
// @Summary Reject a claim
// @Tags Claims
// @Accept json
// @Produce json
// @Param id path string true "Claim ID"
// @Param payload body service.RejectClaimRequest true "Rejection note"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/claims/{id}/reject [post]
func (h *ClaimHandler) Reject(c *gin.Context) {
	var req service.RejectClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	claim, err := h.claims.Reject(c.Request.Context(), c.Param("id"), processorID(c), req.Note)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, claim, nil)
}

// Delete godoc
// @Summary Delete claim
// @Tags Claims
// @Param id path string true "Claim ID"
// @Success 204
// @Router /admin/claims/{id} [delete]
func (h *ClaimHandler) Delete(c *gin.Context) {
	if err := h.claims.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Stats godoc
// @Summary Claim statistics
// @Tags Claims
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/claims/stats [get]
func (h *ClaimHandler) Stats(c *gin.Context) {
	stats, err := h.claims.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

func processorID(c *gin.Context) string {
	if claims := claimsFromContext(c); claims != nil {
		return claims.UserID
	}
	return ""
}
