// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-file-vault/internal/auth"
	"github.com/MKhiriev/go-file-vault/internal/config"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/mail"
	"github.com/MKhiriev/go-file-vault/internal/store"
	"github.com/MKhiriev/go-file-vault/internal/utils"
	"github.com/MKhiriev/go-file-vault/models"
)

const (
	verificationCodeDigits = 6
	challengeIDBytes       = 32
)

// authService is the concrete implementation of AuthService.
// It drives the two-step login: password verification opens an email-code
// challenge, and a correct code atomically consumes the challenge and mints
// a ledger-backed JWT session.
type authService struct {
	userRepository      store.UserRepository
	challengeRepository store.ChallengeRepository
	tokenRepository     store.TokenRepository

	hasher *auth.Hasher
	mailer mail.Mailer

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// challengeTTL is the lifetime of a login challenge.
	challengeTTL time.Duration

	// maxAttempts caps failed code submissions per challenge.
	maxAttempts int

	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given repositories
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(repos *store.Repositories, mailer mail.Mailer, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:      repos.UserRepository,
		challengeRepository: repos.ChallengeRepository,
		tokenRepository:     repos.TokenRepository,
		hasher:              auth.NewHasher(cfg.BcryptCost),
		mailer:              mailer,
		tokenSignKey:        cfg.TokenSignKey,
		tokenIssuer:         cfg.TokenIssuer,
		tokenDuration:       cfg.TokenDuration,
		challengeTTL:        cfg.ChallengeTTL,
		maxAttempts:         cfg.MFAMaxAttempts,
		logger:              logger,
	}
}

// Register creates a new account.
//
// The email is normalized (trimmed, lowercased) before storage so uniqueness
// holds case-insensitively, the full name is trimmed, and the password must
// pass the strength policy. Only the bcrypt hash of the password is stored.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - [auth.ErrInvalidEmail], [auth.ErrInvalidFullName], [auth.ErrWeakPassword]
//     when validation fails.
//   - [store.ErrEmailAlreadyExists] (wrapped) when the address is taken.
func (a *authService) Register(ctx context.Context, email, fullName, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	normalizedEmail, err := auth.NormalizeEmail(email)
	if err != nil {
		return models.User{}, err
	}

	trimmedName, err := auth.ValidateFullName(fullName)
	if err != nil {
		return models.User{}, err
	}

	if err := auth.ValidatePassword(password); err != nil {
		return models.User{}, err
	}

	passwordHash, err := a.hasher.HashPassword(password)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Email:        normalizedEmail,
		FullName:     trimmedName,
		PasswordHash: passwordHash,
		Role:         models.RoleUser,
		IsActive:     true,
	})
	if err != nil {
		log.Err(err).Str("email", normalizedEmail).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login performs the password step of the login flow.
//
// Unknown email and wrong password collapse into the same
// [ErrInvalidCredentials] so responses cannot probe which addresses are
// registered. A correct password on a deactivated account yields
// [ErrInactiveUser].
//
// On success a 6-digit one-time code is generated, persisted as a login
// challenge, and dispatched by email. If the email cannot be delivered the
// challenge is rolled back and [ErrMailDeliveryFailed] is returned, so no
// half-open handshake remains.
func (a *authService) Login(ctx context.Context, email, password string) (string, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		return "", ErrInvalidDataProvided
	}

	normalizedEmail, err := auth.NormalizeEmail(email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	user, err := a.userRepository.FindUserByEmail(ctx, normalizedEmail)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}

		log.Err(err).Str("func", "*authService.Login").Msg("user search by email failed")
		return "", fmt.Errorf("user search by email failed: %w", err)
	}

	if !a.hasher.VerifyPassword(user.PasswordHash, password) {
		log.Warn().Int64("id", user.UserID).Msg("wrong password")
		return "", ErrInvalidCredentials
	}

	if !user.IsActive {
		log.Warn().Int64("id", user.UserID).Msg("login attempt on deactivated account")
		return "", ErrInactiveUser
	}

	code, err := utils.NumericCode(verificationCodeDigits)
	if err != nil {
		return "", fmt.Errorf("code generation failed: %w", err)
	}

	challengeID, err := utils.URLSafeToken(challengeIDBytes)
	if err != nil {
		return "", fmt.Errorf("challenge id generation failed: %w", err)
	}

	challenge := models.LoginChallenge{
		ChallengeID: challengeID,
		UserID:      user.UserID,
		Code:        code,
		ExpiresAt:   time.Now().Add(a.challengeTTL),
	}
	if err := a.challengeRepository.CreateChallenge(ctx, challenge); err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("challenge creation failed")
		return "", fmt.Errorf("challenge creation failed: %w", err)
	}

	if err := a.mailer.SendVerificationCode(ctx, user.Email, code); err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("verification email failed, rolling back challenge")

		if deleteErr := a.challengeRepository.DeleteChallenge(ctx, challengeID); deleteErr != nil {
			log.Err(deleteErr).Str("challenge_id", challengeID).Msg("challenge rollback failed")
		}
		return "", ErrMailDeliveryFailed
	}

	return challengeID, nil
}

// VerifyLogin completes the challenge step.
//
// Outcomes:
//   - Unknown or already-consumed challenge → [ErrInvalidChallenge].
//   - Expired challenge → lazy delete, [ErrChallengeExpired].
//   - Wrong code → attempt counter bumped; at the cap the challenge is
//     invalidated and [ErrTooManyAttempts] returned, otherwise [ErrInvalidCode].
//   - Correct code → the challenge consume and the session-ledger insert
//     commit in one transaction; losing a concurrent race reads as
//     [ErrInvalidChallenge].
func (a *authService) VerifyLogin(ctx context.Context, challengeID, code string) (models.Token, models.User, error) {
	log := logger.FromContext(ctx)

	if challengeID == "" || code == "" {
		return models.Token{}, models.User{}, ErrInvalidDataProvided
	}

	challenge, err := a.challengeRepository.FindUnusedChallenge(ctx, challengeID)
	if err != nil {
		if errors.Is(err, store.ErrChallengeNotFound) {
			return models.Token{}, models.User{}, ErrInvalidChallenge
		}

		log.Err(err).Str("func", "*authService.VerifyLogin").Msg("challenge lookup failed")
		return models.Token{}, models.User{}, fmt.Errorf("challenge lookup failed: %w", err)
	}

	if challenge.Expired(time.Now()) {
		if deleteErr := a.challengeRepository.DeleteChallenge(ctx, challengeID); deleteErr != nil {
			log.Err(deleteErr).Str("challenge_id", challengeID).Msg("expired challenge cleanup failed")
		}
		return models.Token{}, models.User{}, ErrChallengeExpired
	}

	if challenge.Code != code {
		attempts, incErr := a.challengeRepository.IncrementAttempts(ctx, challengeID)
		if incErr != nil {
			log.Err(incErr).Str("challenge_id", challengeID).Msg("attempt increment failed")
			return models.Token{}, models.User{}, fmt.Errorf("attempt increment failed: %w", incErr)
		}

		if attempts >= a.maxAttempts {
			if deleteErr := a.challengeRepository.DeleteChallenge(ctx, challengeID); deleteErr != nil {
				log.Err(deleteErr).Str("challenge_id", challengeID).Msg("attempt-cap invalidation failed")
			}
			return models.Token{}, models.User{}, ErrTooManyAttempts
		}

		return models.Token{}, models.User{}, ErrInvalidCode
	}

	user, err := a.userRepository.FindUserByID(ctx, challenge.UserID)
	if err != nil {
		log.Err(err).Int64("id", challenge.UserID).Msg("challenge user lookup failed")
		return models.Token{}, models.User{}, fmt.Errorf("challenge user lookup failed: %w", err)
	}

	if !user.IsActive {
		return models.Token{}, models.User{}, ErrInactiveUser
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, models.User{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	session := models.SessionLedgerRow{
		RawToken:  token.SignedString,
		ExpiresAt: token.ExpiresAt.Time,
	}
	if err := a.challengeRepository.ConsumeAndIssue(ctx, challengeID, session); err != nil {
		if errors.Is(err, store.ErrChallengeAlreadyUsed) {
			return models.Token{}, models.User{}, ErrInvalidChallenge
		}

		log.Err(err).Str("func", "*authService.VerifyLogin").Msg("consume-and-issue failed")
		return models.Token{}, models.User{}, fmt.Errorf("consume-and-issue failed: %w", err)
	}

	return token, user, nil
}

// Authenticate resolves a raw token string into a live session.
//
// A valid signature is necessary but not sufficient: the session must also
// hold a row in the ledger. Any failure — malformed, expired, wrong issuer,
// revoked — is normalised to [ErrTokenIsExpiredOrInvalid] so callers do not
// learn which check failed.
func (a *authService) Authenticate(ctx context.Context, rawToken string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(rawToken, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	live, err := a.tokenRepository.TokenIsLive(ctx, rawToken)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.Authenticate").Msg("ledger check failed")
		return models.Token{}, fmt.Errorf("ledger check failed: %w", err)
	}
	if !live {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// Logout revokes the session behind the raw token by deleting its ledger
// row. Logging out an already-revoked or never-issued token is a no-op.
func (a *authService) Logout(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return nil
	}

	if err := a.tokenRepository.DeleteToken(ctx, rawToken); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.Logout").Msg("ledger delete failed")
		return fmt.Errorf("ledger delete failed: %w", err)
	}

	return nil
}
