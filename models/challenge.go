package models

import "time"

// LoginChallenge is an in-flight MFA handshake created by the first login
// step and consumed by the second.
//
// A challenge authenticates at most once: the consume step flips Used under
// a conditional update, so concurrent verifications of the same challenge
// produce exactly one success. Expiry makes a challenge permanently
// unusable regardless of the Used flag.
type LoginChallenge struct {
	// ChallengeID is the opaque identifier returned to the client after the
	// password step. High-entropy random, URL-safe encoded.
	ChallengeID string `json:"-"`

	// UserID references the account the challenge was issued for.
	UserID int64 `json:"-"`

	// Code is the numeric one-time code dispatched over email.
	Code string `json:"-"`

	// Used marks a consumed challenge. Once true the challenge can never
	// authenticate again, even if unexpired.
	Used bool `json:"-"`

	// Attempts counts failed code submissions. Reaching the configured cap
	// invalidates the challenge before its deadline.
	Attempts int `json:"-"`

	// ExpiresAt is the absolute deadline of the challenge.
	ExpiresAt time.Time `json:"-"`

	// CreatedAt is the challenge creation timestamp.
	CreatedAt time.Time `json:"-"`
}

// Expired reports whether the challenge is past its deadline at the given time.
func (c LoginChallenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// TableName returns the name of the database table
// associated with the LoginChallenge model.
func (c LoginChallenge) TableName() string {
	return "login_challenges"
}
