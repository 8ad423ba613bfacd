package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/basebackend-server/internal/logger"
	"github.com/dtroode/basebackend-server/internal/model"
)

const defaultContentType = "application/octet-stream"

type File struct {
	fileStore model.FileStore
	storage   model.Storage
	logger    *logger.Logger
}

func NewFile(fileStore model.FileStore, storage model.Storage, logger *logger.Logger) *File {
	return &File{
		fileStore: fileStore,
		storage:   storage,
		logger:    logger,
	}
}

// Upload streams reader to blob storage and records the file metadata.
// The blob is removed again if the metadata cannot be saved.
func (s *File) Upload(ctx context.Context, params model.UploadFileParams, reader io.Reader) (model.File, error) {
	name := sanitizeFileName(params.Name)
	if name == "" {
		return model.File{}, fmt.Errorf("%w: file name is required", model.ErrValidation)
	}

	contentType := params.ContentType
	if contentType == "" {
		contentType = defaultContentType
	}

	id := uuid.New()
	file := model.File{
		ID:          id,
		OwnerID:     params.OwnerID,
		Name:        name,
		ContentType: contentType,
		Size:        params.Size,
		StorageKey:  storageKey(params.OwnerID, id),
		CreatedAt:   time.Now(),
	}

	s.logger.Debug("File service: uploading file",
		"owner_id", file.OwnerID,
		"file_id", file.ID,
		"size", file.Size)

	if err := s.storage.Upload(ctx, file.StorageKey, reader, file.Size, file.ContentType); err != nil {
		s.logger.Error("File service: failed to upload blob",
			"file_id", file.ID,
			"error", err.Error())
		return model.File{}, fmt.Errorf("failed to upload file: %w", err)
	}

	saved, err := s.fileStore.Create(ctx, file)
	if err != nil {
		s.logger.Error("File service: failed to save file metadata",
			"file_id", file.ID,
			"error", err.Error())
		if delErr := s.storage.Delete(ctx, file.StorageKey); delErr != nil {
			s.logger.Error("File service: failed to remove orphaned blob",
				"storage_key", file.StorageKey,
				"error", delErr.Error())
		}
		return model.File{}, fmt.Errorf("failed to save file: %w", err)
	}

	s.logger.Info("File service: file uploaded",
		"owner_id", saved.OwnerID,
		"file_id", saved.ID)

	return saved, nil
}

// Download returns the metadata and content of a file owned by ownerID.
// The caller must close the returned reader.
func (s *File) Download(ctx context.Context, ownerID, id uuid.UUID) (model.File, io.ReadCloser, error) {
	file, err := s.fileStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.File{}, nil, err
		}
		return model.File{}, nil, fmt.Errorf("failed to get file by id: %w", err)
	}

	if file.OwnerID != ownerID {
		return model.File{}, nil, model.ErrNotFound
	}

	rc, err := s.storage.Download(ctx, file.StorageKey)
	if err != nil {
		s.logger.Error("File service: failed to download blob",
			"file_id", file.ID,
			"error", err.Error())
		return model.File{}, nil, fmt.Errorf("failed to download file: %w", err)
	}

	return file, rc, nil
}

func (s *File) List(ctx context.Context, ownerID uuid.UUID) ([]model.File, error) {
	files, err := s.fileStore.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get files by owner id: %w", err)
	}

	return files, nil
}

func storageKey(ownerID, fileID uuid.UUID) string {
	return fmt.Sprintf("files/%s/%s", ownerID, fileID)
}

// sanitizeFileName keeps only the last path element of a client supplied name.
func sanitizeFileName(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	if name == "" {
		return ""
	}
	base := path.Base(name)
	if base == "." || base == "/" || base == ".." {
		return ""
	}
	return base
}
