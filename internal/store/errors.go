package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new
	// user fails because an account with the same email already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotFound is returned when a query expected to match at least
	// one user record produces an empty result set.
	ErrUserNotFound = errors.New("user was not found")

	// ErrFileNotFound is returned when a file lookup by identifier matches
	// no row, or matches only a soft-deleted one.
	ErrFileNotFound = errors.New("file was not found")

	// ErrShareNotFound is returned when a share grant lookup by link token
	// or identifier matches no row.
	ErrShareNotFound = errors.New("share was not found")

	// ErrLinkTokenAlreadyExists is returned when inserting a share grant
	// collides with an existing link token. With 256-bit tokens this is
	// effectively unreachable, but the unique constraint backs the
	// guarantee and the caller may simply retry with a fresh token.
	ErrLinkTokenAlreadyExists = errors.New("link token already exists")

	// ErrChallengeNotFound is returned when a login challenge lookup by
	// identifier matches no unused row.
	ErrChallengeNotFound = errors.New("login challenge was not found")

	// ErrChallengeAlreadyUsed is returned when the conditional consume of a
	// login challenge affects zero rows, meaning a concurrent verification
	// already claimed it.
	ErrChallengeAlreadyUsed = errors.New("login challenge already used")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
