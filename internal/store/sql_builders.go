package store

import (
	sq "github.com/Masterminds/squirrel"
)

// psql is the statement builder configured for PostgreSQL's $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// listUsersQuery builds the non-admin account listing, optionally filtering
// out one account.
func listUsersQuery(excludeUserID int64) (string, []any, error) {
	builder := psql.
		Select("user_id", "email", "full_name", "password_hash", "role", "is_active", "created_at").
		From("users").
		Where(sq.NotEq{"role": "admin"}).
		OrderBy("full_name ASC")

	if excludeUserID != 0 {
		builder = builder.Where(sq.NotEq{"user_id": excludeUserID})
	}

	return builder.ToSql()
}

// listFilesQuery builds the live-file listing, newest uploads first,
// optionally filtered to one owner.
func listFilesQuery(ownerID int64) (string, []any, error) {
	builder := psql.
		Select("file_id", "owner_id", "filename", "stored_name", "path", "size", "content_type", "is_deleted", "created_at").
		From("files").
		Where(sq.Eq{"is_deleted": false}).
		OrderBy("created_at DESC")

	if ownerID != 0 {
		builder = builder.Where(sq.Eq{"owner_id": ownerID})
	}

	return builder.ToSql()
}
