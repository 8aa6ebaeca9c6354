package models

// Request DTOs accepted by the HTTP API.

// RegisterRequest is the body of the registration call.
type RegisterRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// LoginRequest is the body of the password step.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyLoginRequest is the body of the code step. VerificationID is the
// challenge identifier returned by the password step.
type VerifyLoginRequest struct {
	VerificationID string `json:"verification_id"`
	Code           string `json:"code"`
}

// ShareRequest is the body of the share-creation call. ExpirationHours
// bounds the grant's lifetime from now.
type ShareRequest struct {
	FileID          int64           `json:"file_id"`
	SharedWithID    int64           `json:"shared_with_id"`
	Permission      SharePermission `json:"permission"`
	ExpirationHours int             `json:"expiration_hours"`
}
