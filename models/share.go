package models

import "time"

// SharePermission scopes what a grantee may do with a shared file.
type SharePermission string

const (
	// PermissionView allows inline rendering of the shared payload.
	PermissionView SharePermission = "view"

	// PermissionDownload allows the shared payload to be saved as an
	// attachment. The decryption path is identical to view; only the
	// response contract differs.
	PermissionDownload SharePermission = "download"
)

// Valid reports whether p is one of the defined permissions.
func (p SharePermission) Valid() bool {
	return p == PermissionView || p == PermissionDownload
}

// FileShare is a time-boxed capability granting a second user access to a
// decrypted file without full authentication.
//
// Once ExpiresAt passes the grant is inert: the next access deletes it and
// reports it gone, and it must never be served again.
type FileShare struct {
	// ShareID is the internal unique identifier of the grant.
	ShareID int64 `json:"-"`

	// FileID references the shared file.
	FileID int64 `json:"file_id"`

	// GranteeID references the user the file is shared with.
	GranteeID int64 `json:"-"`

	// LinkToken is the globally unique, unguessable capability token
	// embedded in the share link.
	LinkToken string `json:"-"`

	// Permission scopes the grant to view or download.
	Permission SharePermission `json:"permission"`

	// ExpiresAt is the absolute wall-clock deadline of the grant.
	ExpiresAt time.Time `json:"expires_at"`

	// CreatedAt is the grant creation timestamp.
	CreatedAt time.Time `json:"-"`
}

// Expired reports whether the grant is past its deadline at the given time.
func (s FileShare) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// TableName returns the name of the database table
// associated with the FileShare model.
func (s FileShare) TableName() string {
	return "file_shares"
}
