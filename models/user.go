package models

import "time"

// Role is the authorization role assigned to a user account.
type Role string

const (
	// RoleAdmin grants access to the administrative API surface.
	RoleAdmin Role = "admin"

	// RoleUser is the default role assigned at registration.
	RoleUser Role = "user"
)

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Email is the unique account identifier. It is stored lower-cased so
	// that uniqueness holds case-insensitively.
	Email string `json:"email"`

	// FullName is the display name of the user.
	// It is non-sensitive and may be shown in UI.
	FullName string `json:"full_name"`

	// PasswordHash stores the bcrypt digest of the user's password.
	// This value MUST be a derived value, never plaintext, and is never
	// serialized to JSON.
	PasswordHash string `json:"-"`

	// Role determines the account's authorization level.
	// Immutable after creation except through admin action.
	Role Role `json:"role"`

	// IsActive marks whether the account may authenticate.
	IsActive bool `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
