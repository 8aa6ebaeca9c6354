package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-file-vault/internal/crypto"
	"github.com/MKhiriev/go-file-vault/models"
)

// Hand-rolled mocks with overridable behaviour per test case. Only the
// methods a test sets are expected to be called.

type mockUserRepo struct {
	createUser      func(ctx context.Context, user models.User) (models.User, error)
	findUserByEmail func(ctx context.Context, email string) (models.User, error)
	findUserByID    func(ctx context.Context, userID int64) (models.User, error)
	listUsers       func(ctx context.Context, excludeUserID int64) ([]models.User, error)
	deleteUser      func(ctx context.Context, userID int64) error
}

func (m *mockUserRepo) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	return m.createUser(ctx, user)
}
func (m *mockUserRepo) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return m.findUserByEmail(ctx, email)
}
func (m *mockUserRepo) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return m.findUserByID(ctx, userID)
}
func (m *mockUserRepo) ListUsers(ctx context.Context, excludeUserID int64) ([]models.User, error) {
	return m.listUsers(ctx, excludeUserID)
}
func (m *mockUserRepo) DeleteUser(ctx context.Context, userID int64) error {
	return m.deleteUser(ctx, userID)
}

type mockChallengeRepo struct {
	createChallenge         func(ctx context.Context, challenge models.LoginChallenge) error
	findUnusedChallenge     func(ctx context.Context, challengeID string) (models.LoginChallenge, error)
	incrementAttempts       func(ctx context.Context, challengeID string) (int, error)
	deleteChallenge         func(ctx context.Context, challengeID string) error
	deleteChallengesByUser  func(ctx context.Context, userID int64) error
	deleteExpiredChallenges func(ctx context.Context) (int64, error)
	consumeAndIssue         func(ctx context.Context, challengeID string, session models.SessionLedgerRow) error
}

func (m *mockChallengeRepo) CreateChallenge(ctx context.Context, challenge models.LoginChallenge) error {
	return m.createChallenge(ctx, challenge)
}
func (m *mockChallengeRepo) FindUnusedChallenge(ctx context.Context, challengeID string) (models.LoginChallenge, error) {
	return m.findUnusedChallenge(ctx, challengeID)
}
func (m *mockChallengeRepo) IncrementAttempts(ctx context.Context, challengeID string) (int, error) {
	return m.incrementAttempts(ctx, challengeID)
}
func (m *mockChallengeRepo) DeleteChallenge(ctx context.Context, challengeID string) error {
	return m.deleteChallenge(ctx, challengeID)
}
func (m *mockChallengeRepo) DeleteChallengesByUser(ctx context.Context, userID int64) error {
	return m.deleteChallengesByUser(ctx, userID)
}
func (m *mockChallengeRepo) DeleteExpiredChallenges(ctx context.Context) (int64, error) {
	return m.deleteExpiredChallenges(ctx)
}
func (m *mockChallengeRepo) ConsumeAndIssue(ctx context.Context, challengeID string, session models.SessionLedgerRow) error {
	return m.consumeAndIssue(ctx, challengeID, session)
}

type mockTokenRepo struct {
	insertToken         func(ctx context.Context, session models.SessionLedgerRow) error
	tokenIsLive         func(ctx context.Context, rawToken string) (bool, error)
	deleteToken         func(ctx context.Context, rawToken string) error
	deleteExpiredTokens func(ctx context.Context) (int64, error)
}

func (m *mockTokenRepo) InsertToken(ctx context.Context, session models.SessionLedgerRow) error {
	return m.insertToken(ctx, session)
}
func (m *mockTokenRepo) TokenIsLive(ctx context.Context, rawToken string) (bool, error) {
	return m.tokenIsLive(ctx, rawToken)
}
func (m *mockTokenRepo) DeleteToken(ctx context.Context, rawToken string) error {
	return m.deleteToken(ctx, rawToken)
}
func (m *mockTokenRepo) DeleteExpiredTokens(ctx context.Context) (int64, error) {
	return m.deleteExpiredTokens(ctx)
}

type mockFileRepo struct {
	createFile        func(ctx context.Context, file models.StoredFile) (models.StoredFile, error)
	findFileByID      func(ctx context.Context, fileID int64) (models.StoredFile, error)
	listFiles         func(ctx context.Context, ownerID int64) ([]models.StoredFile, error)
	listAllOwnerFiles func(ctx context.Context, ownerID int64) ([]models.StoredFile, error)
	softDeleteFile    func(ctx context.Context, fileID int64) error
	hardDeleteFile    func(ctx context.Context, fileID int64) error
}

func (m *mockFileRepo) CreateFile(ctx context.Context, file models.StoredFile) (models.StoredFile, error) {
	return m.createFile(ctx, file)
}
func (m *mockFileRepo) FindFileByID(ctx context.Context, fileID int64) (models.StoredFile, error) {
	return m.findFileByID(ctx, fileID)
}
func (m *mockFileRepo) ListFiles(ctx context.Context, ownerID int64) ([]models.StoredFile, error) {
	return m.listFiles(ctx, ownerID)
}
func (m *mockFileRepo) ListAllOwnerFiles(ctx context.Context, ownerID int64) ([]models.StoredFile, error) {
	return m.listAllOwnerFiles(ctx, ownerID)
}
func (m *mockFileRepo) SoftDeleteFile(ctx context.Context, fileID int64) error {
	return m.softDeleteFile(ctx, fileID)
}
func (m *mockFileRepo) HardDeleteFile(ctx context.Context, fileID int64) error {
	return m.hardDeleteFile(ctx, fileID)
}

type mockShareRepo struct {
	createShare           func(ctx context.Context, share models.FileShare) (models.FileShare, error)
	findShareByToken      func(ctx context.Context, linkToken string) (models.FileShare, error)
	deleteShare           func(ctx context.Context, shareID int64) error
	deleteSharesByFile    func(ctx context.Context, fileID int64) error
	deleteSharesByGrantee func(ctx context.Context, granteeID int64) error
	deleteExpiredShares   func(ctx context.Context) (int64, error)
}

func (m *mockShareRepo) CreateShare(ctx context.Context, share models.FileShare) (models.FileShare, error) {
	return m.createShare(ctx, share)
}
func (m *mockShareRepo) FindShareByToken(ctx context.Context, linkToken string) (models.FileShare, error) {
	return m.findShareByToken(ctx, linkToken)
}
func (m *mockShareRepo) DeleteShare(ctx context.Context, shareID int64) error {
	return m.deleteShare(ctx, shareID)
}
func (m *mockShareRepo) DeleteSharesByFile(ctx context.Context, fileID int64) error {
	return m.deleteSharesByFile(ctx, fileID)
}
func (m *mockShareRepo) DeleteSharesByGrantee(ctx context.Context, granteeID int64) error {
	return m.deleteSharesByGrantee(ctx, granteeID)
}
func (m *mockShareRepo) DeleteExpiredShares(ctx context.Context) (int64, error) {
	return m.deleteExpiredShares(ctx)
}

type mockMailer struct {
	sendVerificationCode func(ctx context.Context, to, code string) error
	sendShareNotice      func(ctx context.Context, to, fileName, sharedBy, link string) error
}

func (m *mockMailer) SendVerificationCode(ctx context.Context, to, code string) error {
	return m.sendVerificationCode(ctx, to, code)
}
func (m *mockMailer) SendShareNotice(ctx context.Context, to, fileName, sharedBy, link string) error {
	return m.sendShareNotice(ctx, to, fileName, sharedBy, link)
}

type mockEnvelope struct {
	removeClientLayer  func(ciphertext, key, nonce []byte) ([]byte, error)
	sealAtRest         func(plaintext []byte) ([]byte, error)
	openAtRest         func(blob []byte) ([]byte, error)
	rewrapForTransport func(plaintext []byte) (crypto.TransportEnvelope, error)
}

func (m *mockEnvelope) RemoveClientLayer(ciphertext, key, nonce []byte) ([]byte, error) {
	return m.removeClientLayer(ciphertext, key, nonce)
}
func (m *mockEnvelope) SealAtRest(plaintext []byte) ([]byte, error) {
	return m.sealAtRest(plaintext)
}
func (m *mockEnvelope) OpenAtRest(blob []byte) ([]byte, error) {
	return m.openAtRest(blob)
}
func (m *mockEnvelope) RewrapForTransport(plaintext []byte) (crypto.TransportEnvelope, error) {
	return m.rewrapForTransport(plaintext)
}

// futureTime is a convenience for unexpired deadlines in fixtures.
func futureTime() time.Time {
	return time.Now().Add(time.Hour)
}
