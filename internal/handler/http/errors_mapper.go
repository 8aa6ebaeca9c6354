package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-file-vault/internal/auth"
	"github.com/MKhiriev/go-file-vault/internal/crypto"
	"github.com/MKhiriev/go-file-vault/internal/service"
	"github.com/MKhiriev/go-file-vault/internal/store"
	"github.com/MKhiriev/go-file-vault/internal/utils"
	"github.com/MKhiriev/go-file-vault/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,

	ErrNoSessionToken:             http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	ErrEmptyToken:                 http.StatusUnauthorized,

	errInvalidJSON:          http.StatusBadRequest,
	errInvalidMultipartForm: http.StatusBadRequest,
	errMissingFilePart:      http.StatusBadRequest,
	errInvalidKeyEncoding:   http.StatusBadRequest,
	errInvalidID:            http.StatusBadRequest,
	errTooManyLoginAttempts: http.StatusTooManyRequests,
	errAdminOnly:            http.StatusForbidden,

	auth.ErrWeakPassword:    http.StatusBadRequest,
	auth.ErrInvalidEmail:    http.StatusBadRequest,
	auth.ErrInvalidFullName: http.StatusBadRequest,

	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrInactiveUser:            http.StatusForbidden,
	service.ErrInvalidChallenge:        http.StatusUnauthorized,
	service.ErrChallengeExpired:        http.StatusUnauthorized,
	service.ErrInvalidCode:             http.StatusUnauthorized,
	service.ErrTooManyAttempts:         http.StatusTooManyRequests,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrMailDeliveryFailed:      http.StatusBadGateway,

	// a non-owner learns nothing an outsider would not
	service.ErrNotOwner:          http.StatusNotFound,
	service.ErrPermissionInvalid: http.StatusBadRequest,
	service.ErrShareExpired:      http.StatusGone,

	// the caller's own key material failing to open their upload is a
	// client problem; a tag mismatch on a blob we sealed ourselves is ours
	crypto.ErrClientLayerDecryptionFailed: http.StatusBadRequest,
	crypto.ErrBadKeyMaterial:              http.StatusBadRequest,
	crypto.ErrDecryptionFailed:            http.StatusInternalServerError,

	store.ErrEmailAlreadyExists: http.StatusConflict,
	store.ErrUserNotFound:       http.StatusNotFound,
	store.ErrFileNotFound:       http.StatusNotFound,
	store.ErrShareNotFound:      http.StatusNotFound,
	store.ErrChallengeNotFound:  http.StatusUnauthorized,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

// statusFromError resolves an error chain to an HTTP status and a response
// message. Every 500, mapped or not, carries the same generic message so
// internals never leak into a response body.
func statusFromError(err error) (int, string) {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			if status == http.StatusInternalServerError {
				break
			}
			return status, target.Error()
		}
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

// writeError emits the uniform JSON error body for err.
func writeError(w http.ResponseWriter, err error) {
	status, message := statusFromError(err)
	utils.WriteJSON(w, models.ErrorResponse{Message: message}, status)
}
