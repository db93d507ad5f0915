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

type contactService interface {
	List(ctx context.Context, filter models.ContactFilter) ([]models.Contact, error)
	Get(ctx context.Context, id string) (*models.Contact, error)
	Create(ctx context.Context, req service.ContactRequest) (*models.Contact, error)
	Update(ctx context.Context, id string, req service.ContactRequest) (*models.Contact, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*dto.ContactStats, error)
}

// ContactHandler exposes contact endpoints.
type ContactHandler struct {
	contacts contactService
}

// NewContactHandler constructs ContactHandler.
func NewContactHandler(contacts contactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// List godoc
// @Summary List contacts
// @Tags Contacts
// @Produce json
// @Param search query string false "Search name, relationship, phone or email"
// @Param type query string false "member, attending_member, staff or supplier"
// @Success 200 {object} response.Envelope
// @Router /admin/contacts [get]
func (h *ContactHandler) List(c *gin.Context) {
	filter := models.ContactFilter{
		Search: strings.TrimSpace(c.Query("search")),
		Type:   models.ContactType(models.NormalizeFilter(c.Query("type"))),
	}
	contacts, err := h.contacts.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, contacts, nil)
}

// Get godoc
// @Summary Get contact
// @Tags Contacts
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} response.Envelope
// @Router /admin/contacts/{id} [get]
func (h *ContactHandler) Get(c *gin.Context) {
	contact, err := h.contacts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, contact, nil)
}

// Create godoc
// @Summary Add contact
// @Tags Contacts
// @Accept json
// @Produce json
// @Param payload body service.ContactRequest true "Contact payload"
// @Success 201 {object} response.Envelope
// @Router /admin/contacts [post]
func (h *ContactHandler) Create(c *gin.Context) {
	var req service.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	contact, err := h.contacts.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, contact)
}

// Update godoc
// @Summary Replace contact
// @Tags Contacts
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Param payload body service.ContactRequest true "Contact payload"
// @Success 200 {object} response.Envelope
// @Router /admin/contacts/{id} [put]
func (h *ContactHandler) Update(c *gin.Context) {
	var req service.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	contact, err := h.contacts.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, contact, nil)
}

// Delete godoc
// @Summary Delete contact
// @Tags Contacts
// @Param id path string true "Contact ID"
// @Success 204
// @Router /admin/contacts/{id} [delete]
func (h *ContactHandler) Delete(c *gin.Context) {
	if err := h.contacts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Stats godoc
// @Summary Contact statistics
// @Tags Contacts
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/contacts/stats [get]
func (h *ContactHandler) Stats(c *gin.Context) {
	stats, err := h.contacts.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}
