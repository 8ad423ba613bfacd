package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// FileStore defines persistence operations for uploaded file metadata.
type FileStore interface {
	Create(ctx context.Context, file File) (File, error)
	GetByID(ctx context.Context, id uuid.UUID) (File, error)
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]File, error)
}

// File describes an uploaded blob. The content itself lives in Storage under StorageKey.
type File struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	ContentType string
	Size        int64
	StorageKey  string
	CreatedAt   time.Time
}

// UploadFileParams contains parameters to upload a file.
type UploadFileParams struct {
	OwnerID     uuid.UUID
	Name        string
	ContentType string
	Size        int64
}
