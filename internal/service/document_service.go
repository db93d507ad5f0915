package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/funeral-admin-api/internal/models"
	"github.com/noah-isme/funeral-admin-api/pkg/baas"
	appErrors "github.com/noah-isme/funeral-admin-api/pkg/errors"
	"github.com/noah-isme/funeral-admin-api/pkg/storage"
)

const entityDocument = "document"

type documentRepository interface {
	Create(ctx context.Context, doc *models.Document) error
	FindByID(ctx context.Context, id string) (*models.Document, error)
	ListByEntity(ctx context.Context, entityType, entityID string) ([]models.Document, error)
	Delete(ctx context.Context, id string) error
}

// BlobStore holds document binaries. Both the BaaS bucket and the local directory driver
// satisfy it.
type BlobStore interface {
	Upload(ctx context.Context, objectPath string, r io.Reader, contentType string) error
	Download(ctx context.Context, objectPath string) (io.ReadCloser, error)
	Remove(ctx context.Context, objectPaths ...string) error
	PublicURL(objectPath string) string
}

var documentEntityTypes = map[string]struct{}{
	entityMember:  {},
	entityEvent:   {},
	entityClaim:   {},
	entityStaff:   {},
	entityContact: {},
}

// DocumentUpload carries upload metadata and the stream reader.
type DocumentUpload struct {
	EntityType  string
	EntityID    string
	FileName    string
	Size        int64
	MimeType    string
	Category    *string
	Description *string
	Content     io.ReadSeeker
}

// DocumentDownload bundles the blob stream with its metadata. The caller closes Reader.
type DocumentDownload struct {
	Reader    io.ReadCloser
	FileName  string
	MimeType  string
	SizeBytes int64
}

// DocumentServiceConfig holds upload validation parameters.
type DocumentServiceConfig struct {
	MaxFileSize  int64
	AllowedMIMEs []string
}

// DocumentService keeps document metadata rows and blobs in step.
type DocumentService struct {
	repo    documentRepository
	blobs   BlobStore
	audit   auditRecorder
	logger  *zap.Logger
	cfg     DocumentServiceConfig
	mimeSet map[string]struct{}
}

// NewDocumentService constructs the service with defaults.
func NewDocumentService(repo documentRepository, blobs BlobStore, audit auditRecorder, logger *zap.Logger, cfg DocumentServiceConfig) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = 20 * 1024 * 1024
	}
	if len(cfg.AllowedMIMEs) == 0 {
		cfg.AllowedMIMEs = []string{
			"application/pdf",
			"image/jpeg",
			"image/png",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		}
	}
	mimeSet := make(map[string]struct{}, len(cfg.AllowedMIMEs))
	for _, mt := range cfg.AllowedMIMEs {
		mimeSet[strings.ToLower(mt)] = struct{}{}
	}
	return &DocumentService{repo: repo, blobs: blobs, audit: auditOrNoop(audit), logger: logger, cfg: cfg, mimeSet: mimeSet}
}

// Upload writes the blob first and the metadata row after. A failed metadata insert removes
// the blob again.
func (s *DocumentService) Upload(ctx context.Context, upload DocumentUpload) (*models.Document, error) {
	entityType := strings.TrimSpace(upload.EntityType)
	entityID := strings.TrimSpace(upload.EntityID)
	if _, ok := documentEntityTypes[entityType]; !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported entity type")
	}
	if entityID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "entity id is required")
	}
	if upload.Content == nil || upload.Size <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file is required")
	}
	if upload.Size > s.cfg.MaxFileSize {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file exceeds %d bytes limit", s.cfg.MaxFileSize))
	}
	mimeType, err := detectMime(upload.Content, upload.MimeType)
	if err != nil {
		return nil, err
	}
	if _, allowed := s.mimeSet[strings.ToLower(mimeType)]; !allowed {
		return nil, appErrors.Clone(appErrors.ErrValidation, "mime type not allowed")
	}

	fileName := sanitizeFileName(upload.FileName)
	objectPath := path.Join(entityType, entityID, uuid.NewString()+"-"+fileName)
	if err := s.blobs.Upload(ctx, objectPath, upload.Content, mimeType); err != nil {
		return nil, appErrors.Internal(err, "failed to store document")
	}

	doc := &models.Document{
		EntityType:  entityType,
		EntityID:    entityID,
		FileName:    fileName,
		MimeType:    mimeType,
		SizeBytes:   upload.Size,
		StoragePath: objectPath,
		PublicURL:   s.blobs.PublicURL(objectPath),
		UploadedBy:  actorID(ctx),
		Category:    optionalString(upload.Category),
		Description: optionalString(upload.Description),
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		if rmErr := s.blobs.Remove(ctx, objectPath); rmErr != nil {
			s.logger.Warn("failed to remove orphaned blob", zap.String("path", objectPath), zap.Error(rmErr))
		}
		return nil, appErrors.Internal(err, "failed to save document metadata")
	}
	s.audit.Log(ctx, models.AuditActionUpload, entityDocument, doc.ID, nil, doc)
	return doc, nil
}

// ListByEntity returns the documents attached to a record.
func (s *DocumentService) ListByEntity(ctx context.Context, entityType, entityID string) ([]models.Document, error) {
	docs, err := s.repo.ListByEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list documents")
	}
	return docs, nil
}

// Get returns document metadata.
func (s *DocumentService) Get(ctx context.Context, id string) (*models.Document, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, entityDocument)
	}
	return doc, nil
}

// Download opens the document's blob.
func (s *DocumentService) Download(ctx context.Context, id string) (*DocumentDownload, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	reader, err := s.blobs.Download(ctx, doc.StoragePath)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) || errors.Is(err, baas.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "document file not found")
		}
		return nil, appErrors.Internal(err, "failed to open document")
	}
	return &DocumentDownload{Reader: reader, FileName: doc.FileName, MimeType: doc.MimeType, SizeBytes: doc.SizeBytes}, nil
}

// Delete removes the blob, best effort, then the metadata row.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.blobs.Remove(ctx, doc.StoragePath); err != nil {
		s.logger.Warn("failed to remove document blob", zap.String("document_id", id), zap.String("path", doc.StoragePath), zap.Error(err))
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "delete", entityDocument)
	}
	s.audit.Log(ctx, models.AuditActionDelete, entityDocument, id, doc, nil)
	return nil
}

func detectMime(content io.ReadSeeker, declared string) (string, error) {
	if declared != "" && declared != "application/octet-stream" {
		return declared, nil
	}
	header := make([]byte, 512)
	n, err := content.Read(header)
	if err != nil && err != io.EOF {
		return "", appErrors.Internal(err, "failed to inspect file")
	}
	if _, err := content.Seek(0, io.SeekStart); err != nil {
		return "", appErrors.Internal(err, "failed to reset upload stream")
	}
	if n == 0 {
		return "", appErrors.Clone(appErrors.ErrValidation, "empty file")
	}
	return http.DetectContentType(header[:n]), nil
}

func sanitizeFileName(raw string) string {
	raw = path.Base(strings.ReplaceAll(strings.TrimSpace(raw), "\\", "/"))
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	name := strings.Trim(b.String(), "._")
	if name == "" {
		return "file"
	}
	return name
}
