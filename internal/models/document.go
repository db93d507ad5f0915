package models

import "time"

// Document is the metadata row for an uploaded file.
type Document struct {
	ID          string    `db:"id" json:"id"`
	EntityType  string    `db:"entity_type" json:"entity_type"`
	EntityID    string    `db:"entity_id" json:"entity_id"`
	FileName    string    `db:"file_name" json:"file_name"`
	MimeType    string    `db:"mime_type" json:"mime_type"`
	SizeBytes   int64     `db:"size_bytes" json:"size_bytes"`
	StoragePath string    `db:"storage_path" json:"storage_path"`
	PublicURL   string    `db:"public_url" json:"public_url"`
	UploadedBy  string    `db:"uploaded_by" json:"uploaded_by"`
	Category    *string   `db:"category" json:"category,omitempty"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
