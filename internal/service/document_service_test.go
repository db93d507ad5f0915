package service

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/funeral-admin-api/pkg/errors"
)

func pdfUpload(name string) DocumentUpload {
	content := []byte("%PDF-1.4 death certificate")
	return DocumentUpload{
		EntityType: "claim",
		EntityID:   "c1",
		FileName:   name,
		Size:       int64(len(content)),
		Content:    bytes.NewReader(content),
	}
}

func TestDocumentServiceUpload(t *testing.T) {
	repo := newFakeDocumentRepo()
	blobs := newFakeBlobStore()
	audit := &recordingAudit{}
	svc := NewDocumentService(repo, blobs, audit, nil, DocumentServiceConfig{})

	doc, err := svc.Upload(actorContext("user-1"), pdfUpload("../Death Certificate.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "doc-1", doc.ID)
	assert.Equal(t, "application/pdf", doc.MimeType)
	assert.Equal(t, "Death_Certificate.pdf", doc.FileName)
	assert.True(t, strings.HasPrefix(doc.StoragePath, "claim/c1/"))
	assert.True(t, strings.HasSuffix(doc.StoragePath, "-Death_Certificate.pdf"))
	assert.Equal(t, "https://blobs.test/"+doc.StoragePath, doc.PublicURL)
	assert.Contains(t, blobs.objects, doc.StoragePath)
	assert.Equal(t, []string{"upload:document:doc-1"}, audit.actions)

	download, err := svc.Download(context.Background(), doc.ID)
	require.NoError(t, err)
	defer download.Reader.Close()
	body, err := io.ReadAll(download.Reader)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 death certificate", string(body))
}

func TestDocumentServiceUploadRemovesBlobWhenMetadataFails(t *testing.T) {
	repo := newFakeDocumentRepo()
	repo.createErr = errStore
	blobs := newFakeBlobStore()
	svc := NewDocumentService(repo, blobs, nil, nil, DocumentServiceConfig{})

	_, err := svc.Upload(actorContext("user-1"), pdfUpload("cert.pdf"))
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
	require.Len(t, blobs.removed, 1)
	assert.Empty(t, blobs.objects)
}

func TestDocumentServiceUploadValidation(t *testing.T) {
	svc := NewDocumentService(newFakeDocumentRepo(), newFakeBlobStore(), nil, nil, DocumentServiceConfig{MaxFileSize: 10})

	upload := pdfUpload("cert.pdf")
	_, err := svc.Upload(context.Background(), upload)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	svc = NewDocumentService(newFakeDocumentRepo(), newFakeBlobStore(), nil, nil, DocumentServiceConfig{})
	upload = pdfUpload("notes.txt")
	upload.Content = strings.NewReader("plain text notes")
	upload.MimeType = "text/plain"
	_, err = svc.Upload(context.Background(), upload)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	upload = pdfUpload("cert.pdf")
	upload.EntityType = "invoice"
	_, err = svc.Upload(context.Background(), upload)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestDocumentServiceDeleteSurvivesBlobFailure(t *testing.T) {
	repo := newFakeDocumentRepo()
	blobs := newFakeBlobStore()
	svc := NewDocumentService(repo, blobs, nil, nil, DocumentServiceConfig{})
	doc, err := svc.Upload(actorContext("user-1"), pdfUpload("cert.pdf"))
	require.NoError(t, err)

	blobs.removeErr = errStore
	require.NoError(t, svc.Delete(context.Background(), doc.ID))
	assert.Empty(t, repo.items)
	assert.Equal(t, []string{doc.StoragePath}, blobs.removed)

	err = svc.Delete(context.Background(), doc.ID)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "file", sanitizeFileName("   "))
	assert.Equal(t, "report_2025.pdf", sanitizeFileName(`C:\docs\report 2025.pdf`))
}
