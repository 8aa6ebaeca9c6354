package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/utils"
	"github.com/MKhiriev/go-file-vault/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) createShare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, ErrNoSessionToken)
		return
	}

	var req models.ShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, errInvalidJSON)
		return
	}

	ttl := time.Duration(req.ExpirationHours) * time.Hour

	share, link, err := h.services.ShareService.CreateGrant(ctx, userID, req.FileID, req.SharedWithID, req.Permission, ttl)
	if err != nil {
		log.Err(err).Int64("file_id", req.FileID).Msg("share creation failed")
		writeError(w, err)
		return
	}

	log.Info().Int64("share_id", share.ShareID).Int64("file_id", req.FileID).Msg("share created")

	utils.WriteJSON(w, models.ShareResponse{
		Message:    "file shared successfully",
		ShareLink:  link,
		ExpiresAt:  share.ExpiresAt,
		Permission: share.Permission,
	}, http.StatusCreated)
}

// sharedFile exchanges a link token for the shared payload. The route is
// unauthenticated: the unguessable token IS the credential.
func (h *Handler) sharedFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	linkToken := chi.URLParam(r, "linkToken")
	if linkToken == "" {
		writeError(w, errInvalidID)
		return
	}

	file, share, envelope, err := h.services.ShareService.Resolve(ctx, linkToken)
	if err != nil {
		log.Err(err).Msg("share resolution failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.SharedFileResponse{
		DownloadResponse: downloadResponse(file, envelope),
		FileID:           file.FileID,
		FileType:         file.ContentType,
		Permission:       share.Permission,
	}, http.StatusOK)
}
