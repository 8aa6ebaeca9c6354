package service

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-file-vault/internal/config"
	"github.com/MKhiriev/go-file-vault/internal/crypto"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/store"
	"github.com/MKhiriev/go-file-vault/models"
	"github.com/google/uuid"
)

const storedBlobSuffix = ".enc"

// fileService is the concrete implementation of FileService. It keeps the
// metadata row and the on-disk blob in step: creation writes the blob first
// and removes it if the row insert fails; admin deletion removes both.
type fileService struct {
	fileRepository  store.FileRepository
	shareRepository store.ShareRepository
	envelope        crypto.EnvelopeService

	// uploadDir is the directory holding ciphertext blobs. Created at
	// startup if absent.
	uploadDir string

	logger *logger.Logger
}

// NewFileService constructs a FileService storing blobs under the
// configured upload directory, creating it if needed.
func NewFileService(repos *store.Repositories, envelope crypto.EnvelopeService, cfg config.Files, logger *logger.Logger) (FileService, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0o750); err != nil {
		return nil, fmt.Errorf("error creating upload directory: %w", err)
	}

	return &fileService{
		fileRepository:  repos.FileRepository,
		shareRepository: repos.ShareRepository,
		envelope:        envelope,
		uploadDir:       cfg.UploadDir,
		logger:          logger,
	}, nil
}

// Upload implements [FileService].
//
// Pipeline: remove the client encryption layer, seal the plaintext under
// the server master key, write the blob under a random unguessable name,
// then record the metadata row. If the row insert fails the blob is removed
// so no orphan ciphertext survives. The client-supplied filename takes no
// part in the on-disk path.
func (f *fileService) Upload(ctx context.Context, ownerID int64, filename, contentType string, ciphertext, clientKey, clientNonce []byte) (models.StoredFile, error) {
	log := logger.FromContext(ctx)

	if filename == "" || len(ciphertext) == 0 {
		return models.StoredFile{}, ErrInvalidDataProvided
	}

	plaintext, err := f.envelope.RemoveClientLayer(ciphertext, clientKey, clientNonce)
	if err != nil {
		log.Err(err).Int64("owner_id", ownerID).Msg("client layer removal failed")
		return models.StoredFile{}, err
	}

	blob, err := f.envelope.SealAtRest(plaintext)
	if err != nil {
		log.Err(err).Int64("owner_id", ownerID).Msg("sealing at rest failed")
		return models.StoredFile{}, fmt.Errorf("sealing at rest failed: %w", err)
	}

	id := uuid.New()
	storedName := hex.EncodeToString(id[:]) + storedBlobSuffix
	path := filepath.Join(f.uploadDir, storedName)

	if err := os.WriteFile(path, blob, 0o600); err != nil {
		log.Err(err).Str("stored_name", storedName).Msg("blob write failed")
		return models.StoredFile{}, fmt.Errorf("blob write failed: %w", err)
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	created, err := f.fileRepository.CreateFile(ctx, models.StoredFile{
		OwnerID:     ownerID,
		Filename:    filename,
		StoredName:  storedName,
		Path:        path,
		Size:        int64(len(blob)),
		ContentType: contentType,
	})
	if err != nil {
		log.Err(err).Str("stored_name", storedName).Msg("metadata insert failed, removing blob")

		if removeErr := os.Remove(path); removeErr != nil {
			log.Err(removeErr).Str("path", path).Msg("orphan blob removal failed")
		}
		return models.StoredFile{}, fmt.Errorf("metadata insert failed: %w", err)
	}

	return created, nil
}

// Download implements [FileService]. Only the owner may download; a
// non-owner gets [ErrNotOwner], which handlers surface identically to an
// absent file.
func (f *fileService) Download(ctx context.Context, userID, fileID int64) (models.StoredFile, crypto.TransportEnvelope, error) {
	log := logger.FromContext(ctx)

	file, err := f.ownedFile(ctx, userID, fileID)
	if err != nil {
		return models.StoredFile{}, crypto.TransportEnvelope{}, err
	}

	blob, err := os.ReadFile(file.Path)
	if err != nil {
		log.Err(err).Int64("file_id", fileID).Msg("blob read failed")
		return models.StoredFile{}, crypto.TransportEnvelope{}, fmt.Errorf("blob read failed: %w", err)
	}

	plaintext, err := f.envelope.OpenAtRest(blob)
	if err != nil {
		log.Err(err).Int64("file_id", fileID).Msg("at-rest decryption failed")
		return models.StoredFile{}, crypto.TransportEnvelope{}, err
	}

	envelope, err := f.envelope.RewrapForTransport(plaintext)
	if err != nil {
		log.Err(err).Int64("file_id", fileID).Msg("transport rewrap failed")
		return models.StoredFile{}, crypto.TransportEnvelope{}, fmt.Errorf("transport rewrap failed: %w", err)
	}

	return file, envelope, nil
}

// List implements [FileService]. Admins see every owner's live files.
func (f *fileService) List(ctx context.Context, caller models.User) ([]models.StoredFile, error) {
	ownerID := caller.UserID
	if caller.IsAdmin() {
		ownerID = 0
	}

	files, err := f.fileRepository.ListFiles(ctx, ownerID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("id", caller.UserID).Msg("file listing failed")
		return nil, fmt.Errorf("file listing failed: %w", err)
	}

	return files, nil
}

// Delete implements [FileService]. The file is soft-deleted and every share
// grant pointing at it is revoked, so no link outlives the payload.
func (f *fileService) Delete(ctx context.Context, userID, fileID int64) error {
	log := logger.FromContext(ctx)

	if _, err := f.ownedFile(ctx, userID, fileID); err != nil {
		return err
	}

	if err := f.fileRepository.SoftDeleteFile(ctx, fileID); err != nil {
		log.Err(err).Int64("file_id", fileID).Msg("soft delete failed")
		return fmt.Errorf("soft delete failed: %w", err)
	}

	if err := f.shareRepository.DeleteSharesByFile(ctx, fileID); err != nil {
		log.Err(err).Int64("file_id", fileID).Msg("share revocation failed")
		return fmt.Errorf("share revocation failed: %w", err)
	}

	return nil
}

// AdminDelete implements [FileService]. Unlike the owner path this removes
// the blob and the metadata row for good.
func (f *fileService) AdminDelete(ctx context.Context, fileID int64) error {
	log := logger.FromContext(ctx)

	file, err := f.fileRepository.FindFileByID(ctx, fileID)
	if err != nil {
		return fmt.Errorf("file lookup failed: %w", err)
	}

	if err := os.Remove(file.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		// the row and shares still go; an orphan blob is the lesser defect
		log.Err(err).Str("path", file.Path).Msg("blob removal failed")
	}

	if err := f.shareRepository.DeleteSharesByFile(ctx, fileID); err != nil {
		log.Err(err).Int64("file_id", fileID).Msg("share revocation failed")
		return fmt.Errorf("share revocation failed: %w", err)
	}

	if err := f.fileRepository.HardDeleteFile(ctx, fileID); err != nil {
		log.Err(err).Int64("file_id", fileID).Msg("hard delete failed")
		return fmt.Errorf("hard delete failed: %w", err)
	}

	return nil
}

// ownedFile fetches a live file and checks ownership.
func (f *fileService) ownedFile(ctx context.Context, userID, fileID int64) (models.StoredFile, error) {
	file, err := f.fileRepository.FindFileByID(ctx, fileID)
	if err != nil {
		return models.StoredFile{}, fmt.Errorf("file lookup failed: %w", err)
	}

	if file.OwnerID != userID {
		return models.StoredFile{}, ErrNotOwner
	}

	return file, nil
}
