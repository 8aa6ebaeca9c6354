package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/models"
)

// tokenRepository is the PostgreSQL-backed implementation of
// [TokenRepository] over the "session_tokens" ledger.
//
// The ledger is a whitelist: a cryptographically valid token authenticates
// only while its row exists. Deleting the row is the revocation mechanism.
type tokenRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTokenRepository constructs a [TokenRepository] backed by the provided
// database connection and logger.
func NewTokenRepository(db *DB, logger *logger.Logger) TokenRepository {
	logger.Debug().Msg("creating token repository")
	return &tokenRepository{
		db:     db,
		logger: logger,
	}
}

// InsertToken records a freshly minted session in the ledger. The normal
// login path inserts through [ChallengeRepository.ConsumeAndIssue] instead;
// this direct insert exists for flows that mint without a challenge.
func (r *tokenRepository) InsertToken(ctx context.Context, session models.SessionLedgerRow) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, insertSessionToken, session.RawToken, session.ExpiresAt); err != nil {
		log.Err(err).Str("func", "*tokenRepository.InsertToken").Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// TokenIsLive reports whether a ledger row exists for the raw token and is
// not past its expiry. A revoked or expired session reads false, never an
// error.
func (r *tokenRepository) TokenIsLive(ctx context.Context, rawToken string) (bool, error) {
	log := logger.FromContext(ctx)

	var live bool
	row := r.db.QueryRowContext(ctx, sessionTokenIsLive, rawToken)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*tokenRepository.TokenIsLive").Msg("error: row is nil")
		return false, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := row.Scan(&live); err != nil {
		log.Err(err).Str("func", "*tokenRepository.TokenIsLive").Msg("error: scanning error")
		return false, err
	}

	return live, nil
}

// DeleteToken revokes a session by removing its ledger row. Revoking an
// already-revoked session is a no-op, so logout is idempotent.
func (r *tokenRepository) DeleteToken(ctx context.Context, rawToken string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteSessionToken, rawToken); err != nil {
		log.Err(err).Str("func", "*tokenRepository.DeleteToken").Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// DeleteExpiredTokens removes ledger rows whose expiry has passed and
// reports how many rows went. Expired rows are inert either way; this keeps
// the table from growing without bound.
func (r *tokenRepository) DeleteExpiredTokens(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteExpiredSessionTokens)
	if err != nil {
		log.Err(err).Str("func", "*tokenRepository.DeleteExpiredTokens").Msg("error: executing statement")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}
