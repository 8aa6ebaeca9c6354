package http

import (
	"context"
	"time"

	"github.com/MKhiriev/go-file-vault/internal/crypto"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/service"
	"github.com/MKhiriev/go-file-vault/models"
)

// Service mocks with overridable behaviour per test case.

type mockAuthService struct {
	registerFn     func(ctx context.Context, email, fullName, password string) (models.User, error)
	loginFn        func(ctx context.Context, email, password string) (string, error)
	verifyLoginFn  func(ctx context.Context, challengeID, code string) (models.Token, models.User, error)
	authenticateFn func(ctx context.Context, rawToken string) (models.Token, error)
	logoutFn       func(ctx context.Context, rawToken string) error
}

func (m *mockAuthService) Register(ctx context.Context, email, fullName, password string) (models.User, error) {
	return m.registerFn(ctx, email, fullName, password)
}
func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	return m.loginFn(ctx, email, password)
}
func (m *mockAuthService) VerifyLogin(ctx context.Context, challengeID, code string) (models.Token, models.User, error) {
	return m.verifyLoginFn(ctx, challengeID, code)
}
func (m *mockAuthService) Authenticate(ctx context.Context, rawToken string) (models.Token, error) {
	return m.authenticateFn(ctx, rawToken)
}
func (m *mockAuthService) Logout(ctx context.Context, rawToken string) error {
	return m.logoutFn(ctx, rawToken)
}

type mockFileService struct {
	uploadFn      func(ctx context.Context, ownerID int64, filename, contentType string, ciphertext, clientKey, clientNonce []byte) (models.StoredFile, error)
	downloadFn    func(ctx context.Context, userID, fileID int64) (models.StoredFile, crypto.TransportEnvelope, error)
	listFn        func(ctx context.Context, caller models.User) ([]models.StoredFile, error)
	deleteFn      func(ctx context.Context, userID, fileID int64) error
	adminDeleteFn func(ctx context.Context, fileID int64) error
}

func (m *mockFileService) Upload(ctx context.Context, ownerID int64, filename, contentType string, ciphertext, clientKey, clientNonce []byte) (models.StoredFile, error) {
	return m.uploadFn(ctx, ownerID, filename, contentType, ciphertext, clientKey, clientNonce)
}
func (m *mockFileService) Download(ctx context.Context, userID, fileID int64) (models.StoredFile, crypto.TransportEnvelope, error) {
	return m.downloadFn(ctx, userID, fileID)
}
func (m *mockFileService) List(ctx context.Context, caller models.User) ([]models.StoredFile, error) {
	return m.listFn(ctx, caller)
}
func (m *mockFileService) Delete(ctx context.Context, userID, fileID int64) error {
	return m.deleteFn(ctx, userID, fileID)
}
func (m *mockFileService) AdminDelete(ctx context.Context, fileID int64) error {
	return m.adminDeleteFn(ctx, fileID)
}

type mockShareService struct {
	createGrantFn func(ctx context.Context, ownerID, fileID, granteeID int64, permission models.SharePermission, ttl time.Duration) (models.FileShare, string, error)
	resolveFn     func(ctx context.Context, linkToken string) (models.StoredFile, models.FileShare, crypto.TransportEnvelope, error)
}

func (m *mockShareService) CreateGrant(ctx context.Context, ownerID, fileID, granteeID int64, permission models.SharePermission, ttl time.Duration) (models.FileShare, string, error) {
	return m.createGrantFn(ctx, ownerID, fileID, granteeID, permission, ttl)
}
func (m *mockShareService) Resolve(ctx context.Context, linkToken string) (models.StoredFile, models.FileShare, crypto.TransportEnvelope, error) {
	return m.resolveFn(ctx, linkToken)
}

type mockUserService struct {
	getUserFn          func(ctx context.Context, userID int64) (models.User, error)
	listShareTargetsFn func(ctx context.Context, callerID int64) ([]models.User, error)
	listAllUsersFn     func(ctx context.Context) ([]models.User, error)
	deleteUserFn       func(ctx context.Context, userID int64) error
}

func (m *mockUserService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	return m.getUserFn(ctx, userID)
}
func (m *mockUserService) ListShareTargets(ctx context.Context, callerID int64) ([]models.User, error) {
	return m.listShareTargetsFn(ctx, callerID)
}
func (m *mockUserService) ListAllUsers(ctx context.Context) ([]models.User, error) {
	return m.listAllUsersFn(ctx)
}
func (m *mockUserService) DeleteUser(ctx context.Context, userID int64) error {
	return m.deleteUserFn(ctx, userID)
}

// newTestHandler builds a Handler over the given mocks with test-friendly
// rate limits.
func newTestHandler(services *service.Services) *Handler {
	return &Handler{
		services:      services,
		loginLimiter:  newSlidingWindowLimiter(100, time.Minute),
		tokenDuration: 30 * time.Minute,
		logger:        logger.Nop(),
	}
}
