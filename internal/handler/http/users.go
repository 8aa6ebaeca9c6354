package http

import (
	"net/http"

	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/utils"
	"github.com/MKhiriev/go-file-vault/models"
)

// listUsers returns the accounts the caller may share files with, as
// minimal id/name descriptors.
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, ErrNoSessionToken)
		return
	}

	users, err := h.services.UserService.ListShareTargets(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("share target listing failed")
		writeError(w, err)
		return
	}

	targets := make([]models.UserBasicResponse, 0, len(users))
	for _, user := range users {
		targets = append(targets, models.UserBasicResponse{
			UserID: user.UserID,
			Name:   user.FullName,
		})
	}

	utils.WriteJSON(w, targets, http.StatusOK)
}
