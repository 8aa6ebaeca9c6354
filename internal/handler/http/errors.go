// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when extracting the
// session token from a request. Callers can match against them with
// [errors.Is].
var (
	// ErrNoSessionToken is returned when neither the session cookie nor an
	// "Authorization" header carries a token.
	ErrNoSessionToken = errors.New("no session token in request")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but cannot be split into at least two space-separated
	// parts (i.e. the token value is missing entirely).
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the "Authorization" header contains the
	// expected scheme prefix but the token value itself is an empty string.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)

// Request-shape errors surfaced by handlers before any service call. They
// route through the error mapper so every failure body is the same JSON
// shape.
var (
	errInvalidJSON          = errors.New("invalid JSON body")
	errInvalidMultipartForm = errors.New("invalid multipart form")
	errMissingFilePart      = errors.New("missing file part")
	errInvalidKeyEncoding   = errors.New("iv and user_key must be base64-encoded")
	errInvalidID            = errors.New("invalid identifier in path")
	errTooManyLoginAttempts = errors.New("too many login attempts, try again later")
	errAdminOnly            = errors.New("forbidden")
)
