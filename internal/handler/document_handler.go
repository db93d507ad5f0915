package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/funeral-admin-api/internal/models"
	"github.com/noah-isme/funeral-admin-api/internal/service"
	appErrors "github.com/noah-isme/funeral-admin-api/pkg/errors"
	"github.com/noah-isme/funeral-admin-api/pkg/response"
)

type documentService interface {
	Upload(ctx context.Context, upload service.DocumentUpload) (*models.Document, error)
	ListByEntity(ctx context.Context, entityType, entityID string) ([]models.Document, error)
	Get(ctx context.Context, id string) (*models.Document, error)
	Download(ctx context.Context, id string) (*service.DocumentDownload, error)
	Delete(ctx context.Context, id string) error
}

// DocumentHandler manages document HTTP endpoints.
type DocumentHandler struct {
	service documentService
}

// NewDocumentHandler constructs the handler.
func NewDocumentHandler(service documentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// Upload godoc
// @Summary Attach a document to a record
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param entity_type formData string true "member, burial_event, claim, staff or contact"
// @Param entity_id formData string true "Record ID"
// @Param category formData string false "Category"
// @Param description formData string false "Description"
// @Param file formData file true "Document"
// @Success 201 {object} response.Envelope
// @Router /admin/documents [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Internal(err, "failed to open file"))
		return
	}
	defer src.Close()

	reader, ok := src.(io.ReadSeeker)
	if !ok {
		buf, readErr := io.ReadAll(src)
		if readErr != nil {
			response.Error(c, appErrors.Internal(readErr, "failed to buffer file"))
			return
		}
		reader = bytes.NewReader(buf)
	}

	upload := service.DocumentUpload{
		EntityType:  c.PostForm("entity_type"),
		EntityID:    c.PostForm("entity_id"),
		FileName:    fileHeader.Filename,
		Size:        fileHeader.Size,
		MimeType:    fileHeader.Header.Get("Content-Type"),
		Category:    formValue(c, "category"),
		Description: formValue(c, "description"),
		Content:     reader,
	}
	doc, err := h.service.Upload(c.Request.Context(), upload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, doc)
}

// List godoc
// @Summary Documents attached to a record
// @Tags Documents
// @Produce json
// @Param entity_type query string true "Entity type"
// @Param entity_id query string true "Record ID"
// @Success 200 {object} response.Envelope
// @Router /admin/documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	entityType := strings.TrimSpace(c.Query("entity_type"))
	entityID := strings.TrimSpace(c.Query("entity_id"))
	if entityType == "" || entityID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "entity_type and entity_id are required"))
		return
	}
	docs, err := h.service.ListByEntity(c.Request.Context(), entityType, entityID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, docs, nil)
}

// Get godoc
// @Summary Document metadata
// @Tags Documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} response.Envelope
// @Router /admin/documents/{id} [get]
func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doc, nil)
}

// Download godoc
// @Summary Download a document
// @Tags Documents
// @Produce octet-stream
// @Param id path string true "Document ID"
// @Success 200 {file} binary
// @Router /admin/documents/{id}/download [get]
func (h *DocumentHandler) Download(c *gin.Context) {
	result, err := h.service.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer result.Reader.Close() //nolint:errcheck
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.Header("Cache-Control", "no-store")
	c.DataFromReader(http.StatusOK, result.SizeBytes, result.MimeType, result.Reader, nil)
}

// Delete godoc
// @Summary Delete a document
// @Tags Documents
// @Param id path string true "Document ID"
// @Success 204
// @Router /admin/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func formValue(c *gin.Context, key string) *string {
	value := strings.TrimSpace(c.PostForm(key))
	if value == "" {
		return nil
	}
	return &value
}
