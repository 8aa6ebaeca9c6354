package service

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/store"
	"github.com/MKhiriev/go-file-vault/models"
)

// userService is the concrete implementation of UserService.
type userService struct {
	userRepository      store.UserRepository
	fileRepository      store.FileRepository
	shareRepository     store.ShareRepository
	challengeRepository store.ChallengeRepository
	logger              *logger.Logger
}

// NewUserService constructs a UserService over the given repositories.
func NewUserService(repos *store.Repositories, logger *logger.Logger) UserService {
	return &userService{
		userRepository:      repos.UserRepository,
		fileRepository:      repos.FileRepository,
		shareRepository:     repos.ShareRepository,
		challengeRepository: repos.ChallengeRepository,
		logger:              logger,
	}
}

// GetUser implements [UserService].
func (u *userService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	user, err := u.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	return user, nil
}

// ListShareTargets implements [UserService]: regular accounts excluding the
// caller, the population a share grant may point at.
func (u *userService) ListShareTargets(ctx context.Context, callerID int64) ([]models.User, error) {
	users, err := u.userRepository.ListUsers(ctx, callerID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("id", callerID).Msg("share target listing failed")
		return nil, fmt.Errorf("share target listing failed: %w", err)
	}

	return users, nil
}

// ListAllUsers implements [UserService]: every non-admin account, for the
// admin view.
func (u *userService) ListAllUsers(ctx context.Context) ([]models.User, error) {
	users, err := u.userRepository.ListUsers(ctx, 0)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("user listing failed")
		return nil, fmt.Errorf("user listing failed: %w", err)
	}

	return users, nil
}

// DeleteUser implements [UserService]. Everything an account touches is
// removed by explicit steps, never by a database cascade: each owned file
// (soft-deleted ones included) loses its ciphertext blob, then its share
// grants, then its metadata row; then the grants and challenges pointing at
// the account go, and the account row last. The blob is removed before the
// row so a metadata row without a blob never outlives the walk. The
// repository's role guard makes admin accounts undeletable; they read as
// absent.
func (u *userService) DeleteUser(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	files, err := u.fileRepository.ListAllOwnerFiles(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("owned file listing failed")
		return fmt.Errorf("owned file listing failed: %w", err)
	}

	for _, file := range files {
		if err := os.Remove(file.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			// the row and shares still go; an orphan blob is the lesser defect
			log.Err(err).Str("path", file.Path).Msg("blob removal failed")
		}

		if err := u.shareRepository.DeleteSharesByFile(ctx, file.FileID); err != nil {
			log.Err(err).Int64("file_id", file.FileID).Msg("share revocation failed")
			return fmt.Errorf("share revocation failed: %w", err)
		}

		if err := u.fileRepository.HardDeleteFile(ctx, file.FileID); err != nil {
			log.Err(err).Int64("file_id", file.FileID).Msg("file row deletion failed")
			return fmt.Errorf("file row deletion failed: %w", err)
		}
	}

	if err := u.shareRepository.DeleteSharesByGrantee(ctx, userID); err != nil {
		log.Err(err).Int64("id", userID).Msg("grantee share revocation failed")
		return fmt.Errorf("grantee share revocation failed: %w", err)
	}

	if err := u.challengeRepository.DeleteChallengesByUser(ctx, userID); err != nil {
		log.Err(err).Int64("id", userID).Msg("challenge cleanup failed")
		return fmt.Errorf("challenge cleanup failed: %w", err)
	}

	if err := u.userRepository.DeleteUser(ctx, userID); err != nil {
		log.Err(err).Int64("id", userID).Msg("user deletion failed")
		return fmt.Errorf("user deletion failed: %w", err)
	}

	return nil
}
