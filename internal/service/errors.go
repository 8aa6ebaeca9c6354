package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	// The two cases must stay indistinguishable in responses so login
	// attempts cannot probe which addresses are registered.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInactiveUser is returned when credentials check out but the
	// account is deactivated.
	ErrInactiveUser = errors.New("account is deactivated")

	// ErrInvalidChallenge covers unknown, consumed, and concurrently
	// claimed login challenges uniformly.
	ErrInvalidChallenge = errors.New("invalid or expired verification session")

	// ErrChallengeExpired is returned when a challenge's deadline passed
	// before the code was verified.
	ErrChallengeExpired = errors.New("verification code expired")

	// ErrInvalidCode is returned on a wrong one-time code while attempts
	// remain.
	ErrInvalidCode = errors.New("invalid verification code")

	// ErrTooManyAttempts is returned when the failed-code cap is reached;
	// the challenge is invalidated and the login must restart.
	ErrTooManyAttempts = errors.New("too many failed attempts")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrNotOwner is returned when a user addresses a file they do not own.
	// Handlers map it to the same status as an absent file so ownership
	// probing reveals nothing.
	ErrNotOwner = errors.New("file does not belong to user")

	// ErrPermissionInvalid is returned for a share permission outside
	// {view, download}.
	ErrPermissionInvalid = errors.New("invalid share permission")

	// ErrShareExpired is returned when a share link is resolved past its
	// deadline. The grant is already gone by the time the caller sees this.
	ErrShareExpired = errors.New("share link has expired")

	// ErrMailDeliveryFailed is returned when the verification code could
	// not be dispatched; the login challenge is rolled back.
	ErrMailDeliveryFailed = errors.New("could not deliver verification email")
)
