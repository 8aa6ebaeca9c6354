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
)

func newTestChallengeRepo(t *testing.T) (*challengeRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &challengeRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func challengeColumns() []string {
	return []string{"challenge_id", "user_id", "code", "is_used", "attempts", "expires_at", "created_at"}
}

func TestFindUnusedChallenge_Success(t *testing.T) {
	repo, mock, db := newTestChallengeRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.
		NewRows(challengeColumns()).
		AddRow("challenge-1", 5, "123456", false, 0, now.Add(10*time.Minute), now)

	mock.ExpectQuery("SELECT (.+) FROM login_challenges").
		WithArgs("challenge-1").
		WillReturnRows(rows)

	challenge, err := repo.FindUnusedChallenge(context.Background(), "challenge-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if challenge.UserID != 5 {
		t.Errorf("expected UserID=5, got %d", challenge.UserID)
	}
	if challenge.Code != "123456" {
		t.Errorf("expected code 123456, got %s", challenge.Code)
	}
}

func TestFindUnusedChallenge_NotFound(t *testing.T) {
	repo, mock, db := newTestChallengeRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM login_challenges").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(challengeColumns()))

	_, err := repo.FindUnusedChallenge(context.Background(), "missing")
	if !errors.Is(err, ErrChallengeNotFound) {
		t.Fatalf("expected ErrChallengeNotFound, got %v", err)
	}
}

func TestIncrementAttempts_ReturnsNewValue(t *testing.T) {
	repo, mock, db := newTestChallengeRepo(t)
	defer db.Close()

	mock.ExpectQuery("UPDATE login_challenges").
		WithArgs("challenge-1").
		WillReturnRows(sqlmock.NewRows([]string{"attempts"}).AddRow(3))

	attempts, err := repo.IncrementAttempts(context.Background(), "challenge-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected attempts=3, got %d", attempts)
	}
}

func TestConsumeAndIssue_Success(t *testing.T) {
	repo, mock, db := newTestChallengeRepo(t)
	defer db.Close()

	session := models.SessionLedgerRow{
		RawToken:  "signed.jwt.token",
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE login_challenges").
		WithArgs("challenge-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO session_tokens").
		WithArgs(session.RawToken, session.ExpiresAt).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if err := repo.ConsumeAndIssue(context.Background(), "challenge-1", session); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestConsumeAndIssue_AlreadyUsedRollsBack(t *testing.T) {
	repo, mock, db := newTestChallengeRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE login_challenges").
		WithArgs("challenge-1").
		WillReturnResult(sqlmock.NewResult(0, 0)) // lost the race
	mock.ExpectRollback()

	err := repo.ConsumeAndIssue(context.Background(), "challenge-1", models.SessionLedgerRow{RawToken: "t"})
	if !errors.Is(err, ErrChallengeAlreadyUsed) {
		t.Fatalf("expected ErrChallengeAlreadyUsed, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestConsumeAndIssue_InsertFailureRollsBack(t *testing.T) {
	repo, mock, db := newTestChallengeRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE login_challenges").
		WithArgs("challenge-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO session_tokens").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.ConsumeAndIssue(context.Background(), "challenge-1", models.SessionLedgerRow{RawToken: "t"})
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteExpiredChallenges_ReportsCount(t *testing.T) {
	repo, mock, db := newTestChallengeRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM login_challenges").
		WillReturnResult(sqlmock.NewResult(0, 4))

	affected, err := repo.DeleteExpiredChallenges(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if affected != 4 {
		t.Errorf("expected 4 rows deleted, got %d", affected)
	}
}
