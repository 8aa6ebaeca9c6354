package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/models"
	"github.com/jackc/pgerrcode"
)

// fileRepository is the PostgreSQL-backed implementation of [FileRepository].
// It manages metadata rows in the "files" table; the ciphertext blobs live on
// the filesystem and are the caller's responsibility.
type fileRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewFileRepository constructs a [FileRepository] backed by the provided
// database connection and logger.
func NewFileRepository(db *DB, logger *logger.Logger) FileRepository {
	logger.Debug().Msg("creating file repository")
	return &fileRepository{
		db:     db,
		logger: logger,
	}
}

// CreateFile persists an uploaded file's metadata and returns the fully
// populated [models.StoredFile] with server-assigned fields.
//
// Error handling:
//   - PostgreSQL foreign_key_violation (23503) → [ErrUserNotFound]: the
//     declared owner does not exist.
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *fileRepository) CreateFile(ctx context.Context, file models.StoredFile) (models.StoredFile, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createFile, file.OwnerID, file.Filename, file.StoredName, file.Path, file.Size, file.ContentType)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*fileRepository.CreateFile").Msg("error: row is nil")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			return models.StoredFile{}, ErrUserNotFound
		default:
			return models.StoredFile{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	if err := row.Scan(&file.FileID, &file.OwnerID, &file.Filename, &file.StoredName, &file.Path, &file.Size, &file.ContentType, &file.IsDeleted, &file.CreatedAt); err != nil {
		log.Err(err).Str("func", "*fileRepository.CreateFile").Msg("error: scanning error")

		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return models.StoredFile{}, ErrUserNotFound
		}
		return models.StoredFile{}, err
	}

	return file, nil
}

// FindFileByID retrieves a live (not soft-deleted) file row.
//
// Error handling:
//   - No matching row → [ErrFileNotFound]. Soft-deleted files are
//     indistinguishable from absent ones by design.
func (r *fileRepository) FindFileByID(ctx context.Context, fileID int64) (models.StoredFile, error) {
	log := logger.FromContext(ctx)

	var file models.StoredFile
	row := r.db.QueryRowContext(ctx, findFileByID, fileID)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*fileRepository.FindFileByID").Msg("error: row is nil")
		return models.StoredFile{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := row.Scan(&file.FileID, &file.OwnerID, &file.Filename, &file.StoredName, &file.Path, &file.Size, &file.ContentType, &file.IsDeleted, &file.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.StoredFile{}, ErrFileNotFound
		}

		log.Err(err).Str("func", "*fileRepository.FindFileByID").Msg("error: scanning error")
		return models.StoredFile{}, err
	}

	return file, nil
}

// ListFiles returns live files ordered newest first. ownerID of zero lists
// files across all owners, which serves the admin view.
func (r *fileRepository) ListFiles(ctx context.Context, ownerID int64) ([]models.StoredFile, error) {
	log := logger.FromContext(ctx)

	query, args, err := listFilesQuery(ownerID)
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.ListFiles").Msg("error: building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.ListFiles").Msg("error: executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var files []models.StoredFile
	for rows.Next() {
		var file models.StoredFile
		if err := rows.Scan(&file.FileID, &file.OwnerID, &file.Filename, &file.StoredName, &file.Path, &file.Size, &file.ContentType, &file.IsDeleted, &file.CreatedAt); err != nil {
			log.Err(err).Str("func", "*fileRepository.ListFiles").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		files = append(files, file)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return files, nil
}

// ListAllOwnerFiles returns every file row an owner holds, including
// soft-deleted ones. Account removal walks this list to reap blobs, grants
// and rows explicitly; nothing else should use it.
func (r *fileRepository) ListAllOwnerFiles(ctx context.Context, ownerID int64) ([]models.StoredFile, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listAllOwnerFiles, ownerID)
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.ListAllOwnerFiles").Msg("error: executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var files []models.StoredFile
	for rows.Next() {
		var file models.StoredFile
		if err := rows.Scan(&file.FileID, &file.OwnerID, &file.Filename, &file.StoredName, &file.Path, &file.Size, &file.ContentType, &file.IsDeleted, &file.CreatedAt); err != nil {
			log.Err(err).Str("func", "*fileRepository.ListAllOwnerFiles").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		files = append(files, file)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return files, nil
}

// SoftDeleteFile marks a live file deleted. An already-deleted or absent
// file reports [ErrFileNotFound], so deletion is observably idempotent only
// on the first call.
func (r *fileRepository) SoftDeleteFile(ctx context.Context, fileID int64) error {
	return r.deleteOne(ctx, "*fileRepository.SoftDeleteFile", softDeleteFile, fileID)
}

// HardDeleteFile removes the metadata row entirely. Used by the admin
// deletion path after the blob and share grants are gone.
func (r *fileRepository) HardDeleteFile(ctx context.Context, fileID int64) error {
	return r.deleteOne(ctx, "*fileRepository.HardDeleteFile", hardDeleteFile, fileID)
}

func (r *fileRepository) deleteOne(ctx context.Context, funcName, query string, fileID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, query, fileID)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrFileNotFound
	}

	return nil
}
