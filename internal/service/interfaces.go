package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-file-vault/internal/crypto"
	"github.com/MKhiriev/go-file-vault/models"
)

// AuthService implements the two-step MFA login flow and session lifecycle.
type AuthService interface {
	// Register creates an account after policy validation. The stored
	// email is normalized; the password is stored only as a bcrypt hash.
	Register(ctx context.Context, email, fullName, password string) (models.User, error)

	// Login verifies the password step and opens a login challenge,
	// dispatching a one-time code over email. It returns the challenge
	// identifier the client must present to VerifyLogin. The session is
	// NOT established yet.
	Login(ctx context.Context, email, password string) (string, error)

	// VerifyLogin completes the challenge: on a code match it consumes the
	// challenge and mints a ledger-backed session token in one atomic step.
	VerifyLogin(ctx context.Context, challengeID, code string) (models.Token, models.User, error)

	// Authenticate resolves a raw token string into a live session: the
	// signature and expiry must verify AND a ledger row must exist.
	Authenticate(ctx context.Context, rawToken string) (models.Token, error)

	// Logout revokes the session by deleting its ledger row. Idempotent.
	Logout(ctx context.Context, rawToken string) error
}

// FileService implements the encrypted file lifecycle.
type FileService interface {
	// Upload removes the client encryption layer, seals the plaintext
	// under the server master key, writes the blob to disk and records the
	// metadata row. The blob and the row exist together or not at all.
	Upload(ctx context.Context, ownerID int64, filename, contentType string, ciphertext, clientKey, clientNonce []byte) (models.StoredFile, error)

	// Download returns the file metadata and its payload re-wrapped under
	// a fresh transport envelope. Only the owner may download.
	Download(ctx context.Context, userID, fileID int64) (models.StoredFile, crypto.TransportEnvelope, error)

	// List returns the caller's live files newest first; admins see every
	// owner's files.
	List(ctx context.Context, caller models.User) ([]models.StoredFile, error)

	// Delete soft-deletes an owned file and revokes its share grants.
	Delete(ctx context.Context, userID, fileID int64) error

	// AdminDelete hard-deletes a file: blob, share grants, and row.
	AdminDelete(ctx context.Context, fileID int64) error
}

// ShareService implements time-boxed share grants.
type ShareService interface {
	// CreateGrant shares an owned file with another user for ttl, returning
	// the grant and the absolute link the grantee received by email.
	CreateGrant(ctx context.Context, ownerID, fileID, granteeID int64, permission models.SharePermission, ttl time.Duration) (models.FileShare, string, error)

	// Resolve exchanges a link token for the shared payload re-wrapped
	// under a fresh transport envelope. An expired grant is deleted on
	// first touch and reported via [ErrShareExpired].
	Resolve(ctx context.Context, linkToken string) (models.StoredFile, models.FileShare, crypto.TransportEnvelope, error)
}

// UserService implements account lookups, listings and administrative
// removal.
type UserService interface {
	// GetUser returns one account by identifier.
	GetUser(ctx context.Context, userID int64) (models.User, error)

	// ListShareTargets returns regular accounts the caller may share with,
	// excluding the caller themselves.
	ListShareTargets(ctx context.Context, callerID int64) ([]models.User, error)

	// ListAllUsers returns every non-admin account (the admin view).
	ListAllUsers(ctx context.Context) ([]models.User, error)

	// DeleteUser removes a non-admin account. Admin accounts never match.
	DeleteUser(ctx context.Context, userID int64) error
}
