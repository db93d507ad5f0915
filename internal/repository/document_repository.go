package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/funeral-admin-api/internal/models"
)

const documentColumns = `id, entity_type, entity_id, file_name, mime_type, size_bytes, storage_path, public_url, uploaded_by, category, description, created_at, updated_at`

// DocumentRepository stores document metadata. Binaries live in blob storage.
type DocumentRepository struct {
	db *sqlx.DB
}

// NewDocumentRepository constructs a DocumentRepository.
func NewDocumentRepository(db *sqlx.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create inserts a metadata row.
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
	const query = `INSERT INTO documents (id, entity_type, entity_id, file_name, mime_type, size_bytes, storage_path, public_url, uploaded_by, category, description, created_at, updated_at)
        VALUES (:id, :entity_type, :entity_id, :file_name, :mime_type, :size_bytes, :storage_path, :public_url, :uploaded_by, :category, :description, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, doc); err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

// FindByID fetches document metadata.
func (r *DocumentRepository) FindByID(ctx context.Context, id string) (*models.Document, error) {
	query := fmt.Sprintf("SELECT %s FROM documents WHERE id = $1", documentColumns)
	var doc models.Document
	if err := r.db.GetContext(ctx, &doc, query, id); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListByEntity returns the documents attached to one entity, newest first.
func (r *DocumentRepository) ListByEntity(ctx context.Context, entityType, entityID string) ([]models.Document, error) {
	query := fmt.Sprintf("SELECT %s FROM documents WHERE entity_type = $1 AND entity_id = $2 ORDER BY created_at DESC", documentColumns)
	docs := make([]models.Document, 0)
	if err := r.db.SelectContext(ctx, &docs, query, entityType, entityID); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// Delete removes a metadata row.
func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return ensureAffected(res)
}
