package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/models"
	"github.com/jackc/pgerrcode"
)

func newTestShareRepo(t *testing.T) (*shareRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &shareRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func shareColumns() []string {
	return []string{"share_id", "file_id", "grantee_id", "link_token", "permission", "expires_at", "created_at"}
}

func TestCreateShare_Success(t *testing.T) {
	repo, mock, db := newTestShareRepo(t)
	defer db.Close()

	now := time.Now()
	share := models.FileShare{
		FileID:     10,
		GranteeID:  2,
		LinkToken:  "token-abc",
		Permission: models.PermissionView,
		ExpiresAt:  now.Add(time.Hour),
	}

	rows := sqlmock.
		NewRows(shareColumns()).
		AddRow(1, share.FileID, share.GranteeID, share.LinkToken, share.Permission, share.ExpiresAt, now)

	mock.ExpectQuery("INSERT INTO file_shares").
		WithArgs(share.FileID, share.GranteeID, share.LinkToken, string(share.Permission), share.ExpiresAt).
		WillReturnRows(rows)

	created, err := repo.CreateShare(context.Background(), share)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ShareID != 1 {
		t.Errorf("expected ShareID=1, got %d", created.ShareID)
	}
}

func TestCreateShare_TokenCollision(t *testing.T) {
	repo, mock, db := newTestShareRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO file_shares").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateShare(context.Background(), models.FileShare{LinkToken: "dup"})
	if !errors.Is(err, ErrLinkTokenAlreadyExists) {
		t.Fatalf("expected ErrLinkTokenAlreadyExists, got %v", err)
	}
}

func TestCreateShare_DanglingFile(t *testing.T) {
	repo, mock, db := newTestShareRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO file_shares").
		WillReturnError(pgError(pgerrcode.ForeignKeyViolation))

	_, err := repo.CreateShare(context.Background(), models.FileShare{FileID: 99})
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}

func TestFindShareByToken_ReturnsExpiredRows(t *testing.T) {
	repo, mock, db := newTestShareRepo(t)
	defer db.Close()

	past := time.Now().Add(-time.Hour)
	rows := sqlmock.
		NewRows(shareColumns()).
		AddRow(1, 10, 2, "token-abc", "download", past, past.Add(-time.Hour))

	mock.ExpectQuery("SELECT (.+) FROM file_shares").
		WithArgs("token-abc").
		WillReturnRows(rows)

	// expiry is the caller's decision; the repository must still return the row
	share, err := repo.FindShareByToken(context.Background(), "token-abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !share.Expired(time.Now()) {
		t.Error("expected share to read as expired")
	}
}

func TestFindShareByToken_NotFound(t *testing.T) {
	repo, mock, db := newTestShareRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM file_shares").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(shareColumns()))

	_, err := repo.FindShareByToken(context.Background(), "missing")
	if !errors.Is(err, ErrShareNotFound) {
		t.Fatalf("expected ErrShareNotFound, got %v", err)
	}
}

func TestDeleteExpiredShares_ReportsCount(t *testing.T) {
	repo, mock, db := newTestShareRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM file_shares").
		WillReturnResult(sqlmock.NewResult(0, 2))

	affected, err := repo.DeleteExpiredShares(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if affected != 2 {
		t.Errorf("expected 2 rows deleted, got %d", affected)
	}
}
