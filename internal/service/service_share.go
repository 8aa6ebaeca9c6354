package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/MKhiriev/go-file-vault/internal/config"
	"github.com/MKhiriev/go-file-vault/internal/crypto"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/mail"
	"github.com/MKhiriev/go-file-vault/internal/store"
	"github.com/MKhiriev/go-file-vault/internal/utils"
	"github.com/MKhiriev/go-file-vault/models"
)

const linkTokenBytes = 32

// shareService is the concrete implementation of ShareService. A share
// grant is a bearer capability: anyone holding the link token gets the
// decrypted payload until the grant expires or the file goes away.
type shareService struct {
	shareRepository store.ShareRepository
	fileRepository  store.FileRepository
	userRepository  store.UserRepository
	envelope        crypto.EnvelopeService
	mailer          mail.Mailer

	// frontendURL is the base the share links are built on.
	frontendURL string

	logger *logger.Logger
}

// NewShareService constructs a ShareService wired to the given repositories.
func NewShareService(repos *store.Repositories, envelope crypto.EnvelopeService, mailer mail.Mailer, cfg config.App, logger *logger.Logger) ShareService {
	return &shareService{
		shareRepository: repos.ShareRepository,
		fileRepository:  repos.FileRepository,
		userRepository:  repos.UserRepository,
		envelope:        envelope,
		mailer:          mailer,
		frontendURL:     strings.TrimRight(cfg.FrontendURL, "/"),
		logger:          logger,
	}
}

// CreateGrant implements [ShareService].
//
// The caller must own the file, the grantee must exist, and the permission
// must be one of the defined values. The link token carries 256 bits of
// entropy; the grant's deadline is now+ttl. The grantee is notified by
// email, but delivery is best-effort: the grant stands even if the notice
// cannot be sent.
func (s *shareService) CreateGrant(ctx context.Context, ownerID, fileID, granteeID int64, permission models.SharePermission, ttl time.Duration) (models.FileShare, string, error) {
	log := logger.FromContext(ctx)

	if !permission.Valid() {
		return models.FileShare{}, "", ErrPermissionInvalid
	}
	if ttl <= 0 {
		return models.FileShare{}, "", ErrInvalidDataProvided
	}

	file, err := s.fileRepository.FindFileByID(ctx, fileID)
	if err != nil {
		return models.FileShare{}, "", fmt.Errorf("file lookup failed: %w", err)
	}
	if file.OwnerID != ownerID {
		return models.FileShare{}, "", ErrNotOwner
	}

	grantee, err := s.userRepository.FindUserByID(ctx, granteeID)
	if err != nil {
		return models.FileShare{}, "", fmt.Errorf("grantee lookup failed: %w", err)
	}

	owner, err := s.userRepository.FindUserByID(ctx, ownerID)
	if err != nil {
		return models.FileShare{}, "", fmt.Errorf("owner lookup failed: %w", err)
	}

	share, err := s.insertWithFreshToken(ctx, models.FileShare{
		FileID:     fileID,
		GranteeID:  granteeID,
		Permission: permission,
		ExpiresAt:  time.Now().Add(ttl),
	})
	if err != nil {
		log.Err(err).Int64("file_id", fileID).Msg("share creation failed")
		return models.FileShare{}, "", fmt.Errorf("share creation failed: %w", err)
	}

	link := fmt.Sprintf("%s/shared/%s", s.frontendURL, share.LinkToken)

	if err := s.mailer.SendShareNotice(ctx, grantee.Email, file.Filename, owner.FullName, link); err != nil {
		// the grant stands; the owner can still hand over the link
		log.Err(err).Int64("share_id", share.ShareID).Msg("share notice delivery failed")
	}

	return share, link, nil
}

// insertWithFreshToken mints a link token and inserts the grant, retrying
// once on the astronomically unlikely token collision.
func (s *shareService) insertWithFreshToken(ctx context.Context, share models.FileShare) (models.FileShare, error) {
	for attempt := 0; attempt < 2; attempt++ {
		token, err := utils.URLSafeToken(linkTokenBytes)
		if err != nil {
			return models.FileShare{}, fmt.Errorf("link token generation failed: %w", err)
		}
		share.LinkToken = token

		created, err := s.shareRepository.CreateShare(ctx, share)
		if errors.Is(err, store.ErrLinkTokenAlreadyExists) {
			continue
		}
		if err != nil {
			return models.FileShare{}, err
		}

		return created, nil
	}

	return models.FileShare{}, store.ErrLinkTokenAlreadyExists
}

// Resolve implements [ShareService].
//
// An unknown token reads as not found. An expired grant is deleted on first
// touch and reported via [ErrShareExpired]; it never serves again, even if
// the cleanup itself fails. A live grant yields the payload re-wrapped
// under fresh transport material, exactly like an owner download.
func (s *shareService) Resolve(ctx context.Context, linkToken string) (models.StoredFile, models.FileShare, crypto.TransportEnvelope, error) {
	log := logger.FromContext(ctx)

	share, err := s.shareRepository.FindShareByToken(ctx, linkToken)
	if err != nil {
		return models.StoredFile{}, models.FileShare{}, crypto.TransportEnvelope{}, fmt.Errorf("share lookup failed: %w", err)
	}

	if share.Expired(time.Now()) {
		if deleteErr := s.shareRepository.DeleteShare(ctx, share.ShareID); deleteErr != nil {
			log.Err(deleteErr).Int64("share_id", share.ShareID).Msg("expired grant cleanup failed")
		}
		return models.StoredFile{}, models.FileShare{}, crypto.TransportEnvelope{}, ErrShareExpired
	}

	file, err := s.fileRepository.FindFileByID(ctx, share.FileID)
	if err != nil {
		// the payload is gone (soft-deleted); the grant is dead weight
		if errors.Is(err, store.ErrFileNotFound) {
			if deleteErr := s.shareRepository.DeleteShare(ctx, share.ShareID); deleteErr != nil {
				log.Err(deleteErr).Int64("share_id", share.ShareID).Msg("orphan grant cleanup failed")
			}
			return models.StoredFile{}, models.FileShare{}, crypto.TransportEnvelope{}, fmt.Errorf("share lookup failed: %w", store.ErrShareNotFound)
		}
		return models.StoredFile{}, models.FileShare{}, crypto.TransportEnvelope{}, fmt.Errorf("shared file lookup failed: %w", err)
	}

	blob, err := os.ReadFile(file.Path)
	if err != nil {
		log.Err(err).Int64("file_id", file.FileID).Msg("blob read failed")
		return models.StoredFile{}, models.FileShare{}, crypto.TransportEnvelope{}, fmt.Errorf("blob read failed: %w", err)
	}

	plaintext, err := s.envelope.OpenAtRest(blob)
	if err != nil {
		log.Err(err).Int64("file_id", file.FileID).Msg("at-rest decryption failed")
		return models.StoredFile{}, models.FileShare{}, crypto.TransportEnvelope{}, err
	}

	envelope, err := s.envelope.RewrapForTransport(plaintext)
	if err != nil {
		log.Err(err).Int64("file_id", file.FileID).Msg("transport rewrap failed")
		return models.StoredFile{}, models.FileShare{}, crypto.TransportEnvelope{}, fmt.Errorf("transport rewrap failed: %w", err)
	}

	return file, share, envelope, nil
}
