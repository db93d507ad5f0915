package handler

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/funeral-admin-api/pkg/errors"
	"github.com/noah-isme/funeral-admin-api/pkg/response"
	"github.com/noah-isme/funeral-admin-api/pkg/storage"
)

type signedBlobReader interface {
	Resolve(token string) (string, error)
	Download(ctx context.Context, objectPath string) (io.ReadCloser, error)
}

// FileHandler serves blobs of the local storage driver through signed tokens.
type FileHandler struct {
	blobs signedBlobReader
}

// NewFileHandler constructs the handler.
func NewFileHandler(blobs signedBlobReader) *FileHandler {
	return &FileHandler{blobs: blobs}
}

// Serve godoc
// @Summary Fetch a locally stored document through its signed URL
// @Tags Documents
// @Produce octet-stream
// @Param token path string true "Signed token"
// @Success 200 {file} binary
// @Failure 403 {object} response.Envelope
// @Router /files/{token} [get]
func (h *FileHandler) Serve(c *gin.Context) {
	objectPath, err := h.blobs.Resolve(c.Param("token"))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrForbidden.Code, http.StatusForbidden, "invalid or expired link"))
		return
	}
	reader, err := h.blobs.Download(c.Request.Context(), objectPath)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "file not found"))
			return
		}
		response.Error(c, appErrors.Internal(err, "failed to open file"))
		return
	}
	defer reader.Close() //nolint:errcheck

	contentType := mime.TypeByExtension(path.Ext(objectPath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Cache-Control", "private, max-age=300")
	c.DataFromReader(http.StatusOK, -1, contentType, reader, nil)
}
