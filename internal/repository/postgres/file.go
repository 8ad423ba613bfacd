package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/basebackend-server/internal/model"
)

var _ model.FileStore = (*FileRepository)(nil)

const fileColumns = `id, owner_id, name, content_type, size, storage_key, created_at`

type FileRepository struct {
	db *Connection
}

func NewFileRepository(db *Connection) *FileRepository {
	return &FileRepository{
		db: db,
	}
}

func (r *FileRepository) Create(ctx context.Context, file model.File) (model.File, error) {
	query := `INSERT INTO files (id, owner_id, name, content_type, size, storage_key, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + fileColumns

	saved, err := scanFile(r.db.QueryRow(ctx, query,
		file.ID, file.OwnerID, file.Name, file.ContentType, file.Size, file.StorageKey, file.CreatedAt,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return model.File{}, model.ErrConflict
		}
		return model.File{}, fmt.Errorf("failed to create file: %w", err)
	}

	return saved, nil
}

func (r *FileRepository) GetByID(ctx context.Context, id uuid.UUID) (model.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files WHERE id = $1`

	file, err := scanFile(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.File{}, model.ErrNotFound
		}
		return model.File{}, fmt.Errorf("failed to get file by id: %w", err)
	}

	return file, nil
}

func (r *FileRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]model.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files WHERE owner_id = $1 ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query files: %w", err)
	}
	defer rows.Close()

	files := []model.File{}
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		files = append(files, file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate files: %w", err)
	}

	return files, nil
}

func scanFile(row pgx.Row) (model.File, error) {
	var file model.File
	err := row.Scan(&file.ID, &file.OwnerID, &file.Name, &file.ContentType,
		&file.Size, &file.StorageKey, &file.CreatedAt)
	return file, err
}
