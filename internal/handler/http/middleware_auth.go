// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, rate limiting, and logging concerns are
// all handled at this layer before requests are forwarded to the service
// layer.
package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/utils"
)

// sessionCookieName is the cookie carrying the session token for browser
// clients. API clients may send the same token as a bearer header instead.
const sessionCookieName = "access_token"

// auth is an HTTP middleware that enforces session authentication.
//
// The token is taken from the session cookie first, falling back to the
// "Authorization: Bearer" header. It is then resolved through
// [service.AuthService.Authenticate], which verifies the signature AND the
// server-side ledger row — a well-signed token of a revoked session does
// not pass. On success the user's ID and the raw token are stored in the
// request context for downstream handlers.
//
// Every rejection is HTTP 401 with the uniform error body; the reason stays
// in the logs.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := sessionTokenFromRequest(r)
		if err != nil {
			log.Err(err).Send()
			writeError(w, ErrNoSessionToken)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.Authenticate(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("authentication failed")
			writeError(w, err)
			return
		}

		// Store the authenticated user's ID and the raw token in the context
		// so that downstream handlers can use them without re-parsing.
		ctx = context.WithValue(ctx, utils.UserIDCtxKey, token.UserID)
		ctx = context.WithValue(ctx, utils.RawTokenCtxKey, tokenString)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminOnly gates a route group to admin accounts. It must run after
// [Handler.auth]; a non-admin gets 403 without learning whether the route
// exists for anyone else.
func (h *Handler) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		ctx := r.Context()

		userID, ok := utils.GetUserIDFromContext(ctx)
		if !ok {
			writeError(w, ErrNoSessionToken)
			return
		}

		user, err := h.services.UserService.GetUser(ctx, userID)
		if err != nil {
			log.Err(err).Int64("id", userID).Msg("admin gate user lookup failed")
			writeError(w, err)
			return
		}

		if !user.IsAdmin() {
			log.Warn().Int64("id", userID).Msg("non-admin request to admin surface")
			writeError(w, errAdminOnly)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// sessionTokenFromRequest extracts the session token, preferring the cookie
// over the "Authorization" header.
func sessionTokenFromRequest(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrNoSessionToken
	}

	return getTokenFromAuthHeader(authHeader)
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value.
//
// The header is expected to follow the standard format:
//
//	Authorization: <scheme> <token>
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] — if the header contains fewer than
//     two space-separated parts (i.e. the token is missing entirely).
//   - [ErrEmptyToken] — if the second part exists but is an empty string.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
