package http

import (
	"net/http"

	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/utils"
	"github.com/MKhiriev/go-file-vault/models"
)

// Administrative handlers. The adminOnly middleware has already verified
// the caller's role by the time these run.

func (h *Handler) adminListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	users, err := h.services.UserService.ListAllUsers(ctx)
	if err != nil {
		log.Err(err).Msg("admin user listing failed")
		writeError(w, err)
		return
	}

	if users == nil {
		users = []models.User{}
	}
	utils.WriteJSON(w, users, http.StatusOK)
}

func (h *Handler) adminDeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, errInvalidID)
		return
	}

	if err := h.services.UserService.DeleteUser(ctx, userID); err != nil {
		log.Err(err).Int64("id", userID).Msg("admin user deletion failed")
		writeError(w, err)
		return
	}

	log.Info().Int64("id", userID).Msg("user deleted by admin")

	utils.WriteJSON(w, struct {
		Message string `json:"message"`
	}{Message: "user deleted"}, http.StatusOK)
}

func (h *Handler) adminDeleteFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	fileID, err := parseIDParam(r, "fileID")
	if err != nil {
		writeError(w, errInvalidID)
		return
	}

	if err := h.services.FileService.AdminDelete(ctx, fileID); err != nil {
		log.Err(err).Int64("file_id", fileID).Msg("admin file deletion failed")
		writeError(w, err)
		return
	}

	log.Info().Int64("file_id", fileID).Msg("file deleted by admin")

	utils.WriteJSON(w, struct {
		Message string `json:"message"`
	}{Message: "file deleted"}, http.StatusOK)
}
