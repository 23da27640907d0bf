package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/brunofarias/jornada-lms/internal/app/models"
	"github.com/brunofarias/jornada-lms/internal/db"
	"github.com/brunofarias/jornada-lms/internal/pkg/apperrors"
	"github.com/brunofarias/jornada-lms/internal/pkg/logger"
)

// FileRepository handles database operations for uploaded files
type FileRepository struct {
	db db.Querier
}

// NewFileRepository creates a new FileRepository
func NewFileRepository(q db.Querier) *FileRepository {
	return &FileRepository{db: q}
}

// Create inserts a file record and returns its ID
func (r *FileRepository) Create(ctx context.Context, file *models.File) (int64, error) {
	query := `
		INSERT INTO files (file_name, file_path, file_url, file_size, mime_type, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		file.FileName, file.FilePath, file.FileURL, file.FileSize, file.MimeType, file.UploadedBy,
	).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Str("fileName", file.FileName).Msg("Error creating file record")
		return 0, fmt.Errorf("error creating file record: %w", err)
	}
	return id, nil
}

// GetByID retrieves a file record by ID
func (r *FileRepository) GetByID(ctx context.Context, id int64) (*models.File, error) {
	var f models.File
	err := r.db.QueryRow(ctx, `
		SELECT id, file_name, file_path, file_url, file_size, mime_type, uploaded_by, created_at
		FROM files WHERE id = $1`, id,
	).Scan(&f.ID, &f.FileName, &f.FilePath, &f.FileURL, &f.FileSize, &f.MimeType, &f.UploadedBy, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving file record: %w", err)
	}
	return &f, nil
}

// Delete removes a file record
func (r *FileRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Int64("fileID", id).Msg("Error deleting file record")
		return fmt.Errorf("error deleting file record: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
