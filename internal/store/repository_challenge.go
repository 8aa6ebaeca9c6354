package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/models"
)

// challengeRepository is the PostgreSQL-backed implementation of
// [ChallengeRepository] over the "login_challenges" table.
type challengeRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewChallengeRepository constructs a [ChallengeRepository] backed by the
// provided database connection and logger.
func NewChallengeRepository(db *DB, logger *logger.Logger) ChallengeRepository {
	logger.Debug().Msg("creating challenge repository")
	return &challengeRepository{
		db:     db,
		logger: logger,
	}
}

// CreateChallenge persists a freshly issued login challenge.
func (r *challengeRepository) CreateChallenge(ctx context.Context, challenge models.LoginChallenge) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, createChallenge, challenge.ChallengeID, challenge.UserID, challenge.Code, challenge.ExpiresAt); err != nil {
		log.Err(err).Str("func", "*challengeRepository.CreateChallenge").Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// FindUnusedChallenge retrieves a challenge that has not been consumed.
// Used and absent challenges are indistinguishable to the caller, which is
// what the uniform invalid-challenge response requires.
func (r *challengeRepository) FindUnusedChallenge(ctx context.Context, challengeID string) (models.LoginChallenge, error) {
	log := logger.FromContext(ctx)

	var challenge models.LoginChallenge
	row := r.db.QueryRowContext(ctx, findUnusedChallenge, challengeID)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*challengeRepository.FindUnusedChallenge").Msg("error: row is nil")
		return models.LoginChallenge{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := row.Scan(&challenge.ChallengeID, &challenge.UserID, &challenge.Code, &challenge.Used, &challenge.Attempts, &challenge.ExpiresAt, &challenge.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.LoginChallenge{}, ErrChallengeNotFound
		}

		log.Err(err).Str("func", "*challengeRepository.FindUnusedChallenge").Msg("error: scanning error")
		return models.LoginChallenge{}, err
	}

	return challenge, nil
}

// IncrementAttempts bumps the failed-submission counter and returns the new
// value. The caller compares it against the configured cap and invalidates
// the challenge when reached.
func (r *challengeRepository) IncrementAttempts(ctx context.Context, challengeID string) (int, error) {
	log := logger.FromContext(ctx)

	var attempts int
	row := r.db.QueryRowContext(ctx, incrementChallengeAttempts, challengeID)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*challengeRepository.IncrementAttempts").Msg("error: row is nil")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := row.Scan(&attempts); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrChallengeNotFound
		}

		log.Err(err).Str("func", "*challengeRepository.IncrementAttempts").Msg("error: scanning error")
		return 0, err
	}

	return attempts, nil
}

// DeleteChallenge removes a challenge outright. Used for lazy expiry and
// attempt-cap invalidation; an already-absent row is not an error.
func (r *challengeRepository) DeleteChallenge(ctx context.Context, challengeID string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteChallenge, challengeID); err != nil {
		log.Err(err).Str("func", "*challengeRepository.DeleteChallenge").Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// DeleteChallengesByUser removes every in-flight challenge for an account,
// used or not. Called when the account itself is removed.
func (r *challengeRepository) DeleteChallengesByUser(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteChallengesByUser, userID); err != nil {
		log.Err(err).Str("func", "*challengeRepository.DeleteChallengesByUser").Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// DeleteExpiredChallenges removes every challenge past its deadline and
// reports how many rows went.
func (r *challengeRepository) DeleteExpiredChallenges(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteExpiredChallenges)
	if err != nil {
		log.Err(err).Str("func", "*challengeRepository.DeleteExpiredChallenges").Msg("error: executing statement")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}

// ConsumeAndIssue claims the challenge and records the minted session in
// one transaction.
//
// The consume is conditional on is_used = false, so of any number of
// concurrent verifications of the same challenge exactly one claims it; the
// losers see [ErrChallengeAlreadyUsed]. If the ledger insert fails the
// claim rolls back and the challenge stays available.
func (r *challengeRepository) ConsumeAndIssue(ctx context.Context, challengeID string, session models.SessionLedgerRow) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*challengeRepository.ConsumeAndIssue").Msg("error: beginning transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, consumeChallenge, challengeID)
	if err != nil {
		log.Err(err).Str("func", "*challengeRepository.ConsumeAndIssue").Msg("error: consuming challenge")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrChallengeAlreadyUsed
	}

	if _, err := tx.ExecContext(ctx, insertSessionToken, session.RawToken, session.ExpiresAt); err != nil {
		log.Err(err).Str("func", "*challengeRepository.ConsumeAndIssue").Msg("error: inserting session token")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*challengeRepository.ConsumeAndIssue").Msg("error: committing transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}
