package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/funeral-admin-api/internal/models"
	"github.com/noah-isme/funeral-admin-api/internal/service"
	"github.com/noah-isme/funeral-admin-api/pkg/storage"
)

type fakeDocuments struct {
	upload  service.DocumentUpload
	content string
}

func (f *fakeDocuments) Upload(ctx context.Context, upload service.DocumentUpload) (*models.Document, error) {
	f.upload = upload
	data, err := io.ReadAll(upload.Content)
	if err != nil {
		return nil, err
	}
	f.content = string(data)
	return &models.Document{ID: "doc-1", EntityType: upload.EntityType, EntityID: upload.EntityID, FileName: upload.FileName}, nil
}

func (f *fakeDocuments) ListByEntity(ctx context.Context, entityType, entityID string) ([]models.Document, error) {
	return []models.Document{}, nil
}

func (f *fakeDocuments) Get(ctx context.Context, id string) (*models.Document, error) {
	return &models.Document{ID: id}, nil
}

func (f *fakeDocuments) Download(ctx context.Context, id string) (*service.DocumentDownload, error) {
	return &service.DocumentDownload{
		Reader:    io.NopCloser(strings.NewReader("%PDF")),
		FileName:  "cert.pdf",
		MimeType:  "application/pdf",
		SizeBytes: 4,
	}, nil
}

func (f *fakeDocuments) Delete(ctx context.Context, id string) error { return nil }

func TestDocumentHandlerUploadMultipart(t *testing.T) {
	docs := &fakeDocuments{}
	handler := NewDocumentHandler(docs)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("entity_type", "claim"))
	require.NoError(t, writer.WriteField("entity_id", "c1"))
	require.NoError(t, writer.WriteField("category", " certificate "))
	part, err := writer.CreateFormFile("file", "cert.pdf")
	require.NoError(t, err)
	_, _ = part.Write([]byte("%PDF-1.4"))
	require.NoError(t, writer.Close())

	c, w := newGinContext(http.MethodPost, "/admin/documents", body.Bytes())
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())

	handler.Upload(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "claim", docs.upload.EntityType)
	assert.Equal(t, "c1", docs.upload.EntityID)
	assert.Equal(t, "cert.pdf", docs.upload.FileName)
	require.NotNil(t, docs.upload.Category)
	assert.Equal(t, "certificate", *docs.upload.Category)
	assert.Nil(t, docs.upload.Description)
	assert.Equal(t, "%PDF-1.4", docs.content)
}

func TestDocumentHandlerUploadRequiresFile(t *testing.T) {
	handler := NewDocumentHandler(&fakeDocuments{})
	c, w := newGinContext(http.MethodPost, "/admin/documents", nil)

	handler.Upload(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDocumentHandlerDownload(t *testing.T) {
	handler := NewDocumentHandler(&fakeDocuments{})
	c, w := newGinContext(http.MethodGet, "/admin/documents/doc-1/download", nil)
	c.Params = gin.Params{{Key: "id", Value: "doc-1"}}

	handler.Download(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="cert.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF", w.Body.String())
}

func TestFileHandlerServesSignedBlob(t *testing.T) {
	signer := storage.NewSignedURLSigner("secret", time.Minute)
	blobs, err := storage.NewLocalStorage(t.TempDir(), signer, "/files")
	require.NoError(t, err)
	require.NoError(t, blobs.Upload(context.Background(), "claim/c1/cert.pdf", strings.NewReader("%PDF-1.4"), "application/pdf"))
	token := strings.TrimPrefix(blobs.PublicURL("claim/c1/cert.pdf"), "/files/")

	handler := NewFileHandler(blobs)
	c, w := newGinContext(http.MethodGet, "/files/"+token, nil)
	c.Params = gin.Params{{Key: "token", Value: token}}
	handler.Serve(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "%PDF-1.4", w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))

	c, w = newGinContext(http.MethodGet, "/files/forged", nil)
	c.Params = gin.Params{{Key: "token", Value: "forged"}}
	handler.Serve(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
