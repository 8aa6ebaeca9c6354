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

// shareRepository is the PostgreSQL-backed implementation of
// [ShareRepository] over the "file_shares" table.
type shareRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewShareRepository constructs a [ShareRepository] backed by the provided
// database connection and logger.
func NewShareRepository(db *DB, logger *logger.Logger) ShareRepository {
	logger.Debug().Msg("creating share repository")
	return &shareRepository{
		db:     db,
		logger: logger,
	}
}

// CreateShare persists a share grant and returns the fully populated
// [models.FileShare] with server-assigned fields.
//
// Error handling:
//   - unique_violation (23505) → [ErrLinkTokenAlreadyExists]: the caller
//     may retry with a fresh token.
//   - foreign_key_violation (23503) → [ErrFileNotFound]: the file or
//     grantee reference is dangling.
func (r *shareRepository) CreateShare(ctx context.Context, share models.FileShare) (models.FileShare, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createShare, share.FileID, share.GranteeID, share.LinkToken, share.Permission, share.ExpiresAt)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*shareRepository.CreateShare").Msg("error: row is nil")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.FileShare{}, ErrLinkTokenAlreadyExists
		case pgerrcode.ForeignKeyViolation:
			return models.FileShare{}, ErrFileNotFound
		default:
			return models.FileShare{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	if err := row.Scan(&share.ShareID, &share.FileID, &share.GranteeID, &share.LinkToken, &share.Permission, &share.ExpiresAt, &share.CreatedAt); err != nil {
		log.Err(err).Str("func", "*shareRepository.CreateShare").Msg("error: scanning error")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.FileShare{}, ErrLinkTokenAlreadyExists
		case pgerrcode.ForeignKeyViolation:
			return models.FileShare{}, ErrFileNotFound
		}
		return models.FileShare{}, err
	}

	return share, nil
}

// FindShareByToken retrieves the grant behind a link token. Expiry is NOT
// checked here: the caller decides what an expired grant means (the lazy
// delete-and-Gone contract lives in the service layer).
func (r *shareRepository) FindShareByToken(ctx context.Context, linkToken string) (models.FileShare, error) {
	log := logger.FromContext(ctx)

	var share models.FileShare
	row := r.db.QueryRowContext(ctx, findShareByToken, linkToken)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*shareRepository.FindShareByToken").Msg("error: row is nil")
		return models.FileShare{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := row.Scan(&share.ShareID, &share.FileID, &share.GranteeID, &share.LinkToken, &share.Permission, &share.ExpiresAt, &share.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.FileShare{}, ErrShareNotFound
		}

		log.Err(err).Str("func", "*shareRepository.FindShareByToken").Msg("error: scanning error")
		return models.FileShare{}, err
	}

	return share, nil
}

// DeleteShare removes one grant by identifier. An absent grant is not an
// error: the expired-grant cleanup races with the sweeper and both may try
// the same row.
func (r *shareRepository) DeleteShare(ctx context.Context, shareID int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteShareByID, shareID); err != nil {
		log.Err(err).Str("func", "*shareRepository.DeleteShare").Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// DeleteSharesByFile removes every grant pointing at a file. Called when
// the file itself is deleted so no link outlives its payload.
func (r *shareRepository) DeleteSharesByFile(ctx context.Context, fileID int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteSharesByFile, fileID); err != nil {
		log.Err(err).Str("func", "*shareRepository.DeleteSharesByFile").Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// DeleteSharesByGrantee removes every grant pointing at a recipient.
// Called when the recipient's account is removed.
func (r *shareRepository) DeleteSharesByGrantee(ctx context.Context, granteeID int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteSharesByGrantee, granteeID); err != nil {
		log.Err(err).Str("func", "*shareRepository.DeleteSharesByGrantee").Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// DeleteExpiredShares removes every grant past its deadline and reports how
// many rows went. The sweeper calls this periodically; correctness does not
// depend on it because resolution checks expiry itself.
func (r *shareRepository) DeleteExpiredShares(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteExpiredShares)
	if err != nil {
		log.Err(err).Str("func", "*shareRepository.DeleteExpiredShares").Msg("error: executing statement")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}
