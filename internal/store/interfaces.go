package store

import (
	"context"

	"github.com/MKhiriev/go-file-vault/models"
)

// ErrorClassificator decides whether a failed database operation is worth
// retrying. Implemented by [PostgresErrorClassifier].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// UserRepository manages account records.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	// ListUsers returns non-admin accounts, optionally excluding one user
	// (the caller, for share-target listings). excludeUserID of zero
	// excludes nobody.
	ListUsers(ctx context.Context, excludeUserID int64) ([]models.User, error)
	// DeleteUser removes a non-admin account. Admin rows never match.
	DeleteUser(ctx context.Context, userID int64) error
}

// FileRepository manages encrypted file metadata rows.
type FileRepository interface {
	CreateFile(ctx context.Context, file models.StoredFile) (models.StoredFile, error)
	FindFileByID(ctx context.Context, fileID int64) (models.StoredFile, error)
	// ListFiles returns live files newest first. ownerID of zero lists
	// every owner's files (the admin view).
	ListFiles(ctx context.Context, ownerID int64) ([]models.StoredFile, error)
	// ListAllOwnerFiles returns every row an owner holds, soft-deleted
	// included, so account removal can reap blobs and rows explicitly.
	ListAllOwnerFiles(ctx context.Context, ownerID int64) ([]models.StoredFile, error)
	SoftDeleteFile(ctx context.Context, fileID int64) error
	HardDeleteFile(ctx context.Context, fileID int64) error
}

// ShareRepository manages time-boxed share grants.
type ShareRepository interface {
	CreateShare(ctx context.Context, share models.FileShare) (models.FileShare, error)
	FindShareByToken(ctx context.Context, linkToken string) (models.FileShare, error)
	DeleteShare(ctx context.Context, shareID int64) error
	DeleteSharesByFile(ctx context.Context, fileID int64) error
	DeleteSharesByGrantee(ctx context.Context, granteeID int64) error
	DeleteExpiredShares(ctx context.Context) (int64, error)
}

// ChallengeRepository manages in-flight MFA login challenges.
type ChallengeRepository interface {
	CreateChallenge(ctx context.Context, challenge models.LoginChallenge) error
	FindUnusedChallenge(ctx context.Context, challengeID string) (models.LoginChallenge, error)
	// IncrementAttempts bumps the failed-submission counter and returns the
	// new value so the caller can enforce the attempt cap.
	IncrementAttempts(ctx context.Context, challengeID string) (int, error)
	DeleteChallenge(ctx context.Context, challengeID string) error
	DeleteChallengesByUser(ctx context.Context, userID int64) error
	DeleteExpiredChallenges(ctx context.Context) (int64, error)
	// ConsumeAndIssue atomically claims the challenge and records the
	// freshly minted session in the ledger. Either both happen or neither:
	// a challenge is never burned without a session, and a session never
	// exists for an unconsumed challenge.
	ConsumeAndIssue(ctx context.Context, challengeID string, session models.SessionLedgerRow) error
}

// TokenRepository manages the session ledger that makes signed tokens live.
type TokenRepository interface {
	InsertToken(ctx context.Context, session models.SessionLedgerRow) error
	// TokenIsLive reports whether a ledger row exists for the raw token and
	// has not passed its expiry.
	TokenIsLive(ctx context.Context, rawToken string) (bool, error)
	DeleteToken(ctx context.Context, rawToken string) error
	DeleteExpiredTokens(ctx context.Context) (int64, error)
}
