package models

import "time"

// Response DTOs returned by the HTTP API. Binary fields are base64-encoded
// because the transport is JSON.

// ErrorResponse is the uniform error body. Message never carries internal
// detail (stack traces, SQL, key material); those stay in server logs.
type ErrorResponse struct {
	Message string `json:"message"`
}

// UploadResponse confirms a stored upload.
type UploadResponse struct {
	Message    string    `json:"message"`
	Filename   string    `json:"filename"`
	FileID     int64     `json:"id"`
	Size       int64     `json:"size"`
	UploadDate time.Time `json:"upload_date"`
	FileType   string    `json:"file_type"`
}

// DownloadResponse carries a file payload re-wrapped under a fresh
// ephemeral key for this response only. The caller decrypts client-side;
// the server's long-lived key never travels.
type DownloadResponse struct {
	Filename      string `json:"filename"`
	EncryptedData string `json:"encrypted_data"`
	Key           string `json:"key"`
	IV            string `json:"iv"`
	Tag           string `json:"tag"`
}

// SharedFileResponse is the download envelope served through a share link,
// annotated with the grant's permission so the client can choose between
// inline render and attachment.
type SharedFileResponse struct {
	DownloadResponse
	FileID     int64           `json:"id"`
	FileType   string          `json:"file_type"`
	Permission SharePermission `json:"permission"`
}

// LoginResponse is the first-step login reply: the code went out over the
// side channel, the verification id names the pending challenge.
type LoginResponse struct {
	Message        string `json:"message"`
	VerificationID string `json:"verification_id"`
}

// TokenResponse is the second-step login reply carrying the minted session.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// ShareResponse confirms a created share grant.
type ShareResponse struct {
	Message    string          `json:"message"`
	ShareLink  string          `json:"share_link"`
	ExpiresAt  time.Time       `json:"expires_at"`
	Permission SharePermission `json:"permission"`
}

// UserBasicResponse is the minimal user descriptor exposed in share-target
// listings.
type UserBasicResponse struct {
	UserID int64  `json:"id"`
	Name   string `json:"name"`
}
