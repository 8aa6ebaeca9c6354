package http

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-file-vault/internal/crypto"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/utils"
	"github.com/MKhiriev/go-file-vault/models"
	"github.com/go-chi/chi/v5"
)

// maxUploadBytes caps the multipart form held in memory per upload.
const maxUploadBytes = 64 << 20

// upload accepts a client-side encrypted file as multipart form data:
// the "file" part carries the ciphertext, "iv" and "user_key" carry the
// base64-encoded nonce and key of the client layer.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, ErrNoSessionToken)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		log.Err(err).Msg("invalid multipart form")
		writeError(w, errInvalidMultipartForm)
		return
	}

	filePart, fileHeader, err := r.FormFile("file")
	if err != nil {
		log.Err(err).Msg("missing file part")
		writeError(w, errMissingFilePart)
		return
	}
	defer filePart.Close()

	ciphertext, err := io.ReadAll(filePart)
	if err != nil {
		log.Err(err).Msg("reading file part failed")
		writeError(w, errInvalidMultipartForm)
		return
	}

	clientNonce, err := base64.StdEncoding.DecodeString(r.FormValue("iv"))
	if err != nil {
		log.Err(err).Msg("iv is not valid base64")
		writeError(w, errInvalidKeyEncoding)
		return
	}

	clientKey, err := base64.StdEncoding.DecodeString(r.FormValue("user_key"))
	if err != nil {
		log.Err(err).Msg("user_key is not valid base64")
		writeError(w, errInvalidKeyEncoding)
		return
	}

	file, err := h.services.FileService.Upload(ctx, userID, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), ciphertext, clientKey, clientNonce)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("upload failed")
		writeError(w, err)
		return
	}

	log.Info().Int64("file_id", file.FileID).Int64("id", userID).Msg("file uploaded")

	utils.WriteJSON(w, models.UploadResponse{
		Message:    "file uploaded successfully",
		Filename:   file.Filename,
		FileID:     file.FileID,
		Size:       file.Size,
		UploadDate: file.CreatedAt,
		FileType:   file.ContentType,
	}, http.StatusCreated)
}

func (h *Handler) listFiles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, err := h.callerFromContext(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	files, err := h.services.FileService.List(ctx, caller)
	if err != nil {
		log.Err(err).Int64("id", caller.UserID).Msg("file listing failed")
		writeError(w, err)
		return
	}

	if files == nil {
		files = []models.StoredFile{}
	}
	utils.WriteJSON(w, files, http.StatusOK)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, ErrNoSessionToken)
		return
	}

	fileID, err := parseIDParam(r, "fileID")
	if err != nil {
		writeError(w, errInvalidID)
		return
	}

	file, envelope, err := h.services.FileService.Download(ctx, userID, fileID)
	if err != nil {
		log.Err(err).Int64("file_id", fileID).Msg("download failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, downloadResponse(file, envelope), http.StatusOK)
}

func (h *Handler) deleteFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, ErrNoSessionToken)
		return
	}

	fileID, err := parseIDParam(r, "fileID")
	if err != nil {
		writeError(w, errInvalidID)
		return
	}

	if err := h.services.FileService.Delete(ctx, userID, fileID); err != nil {
		log.Err(err).Int64("file_id", fileID).Msg("file deletion failed")
		writeError(w, err)
		return
	}

	log.Info().Int64("file_id", fileID).Int64("id", userID).Msg("file deleted")

	utils.WriteJSON(w, struct {
		Message string `json:"message"`
	}{Message: "file deleted"}, http.StatusOK)
}

// callerFromContext loads the full account of the authenticated user.
func (h *Handler) callerFromContext(ctx context.Context) (models.User, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return models.User{}, ErrNoSessionToken
	}

	return h.services.UserService.GetUser(ctx, userID)
}

// downloadResponse packs a transport envelope into the JSON response shape;
// binary fields travel base64-encoded.
func downloadResponse(file models.StoredFile, envelope crypto.TransportEnvelope) models.DownloadResponse {
	return models.DownloadResponse{
		Filename:      file.Filename,
		EncryptedData: base64.StdEncoding.EncodeToString(envelope.Ciphertext),
		Key:           base64.StdEncoding.EncodeToString(envelope.Key),
		IV:            base64.StdEncoding.EncodeToString(envelope.Nonce),
		Tag:           base64.StdEncoding.EncodeToString(envelope.Tag),
	}
}

// parseIDParam reads a positive int64 route parameter.
func parseIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, strconv.ErrSyntax
	}
	return id, nil
}
