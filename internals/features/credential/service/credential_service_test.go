package service

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tapwork_backend/internals/configs"
)

func newServiceWithMock(t *testing.T) (*CredentialService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db, PreferSimpleProtocol: true}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return New(gdb, &configs.Settings{CredentialExpiryDays: 365}), mock
}

func TestGenerateTokenShape(t *testing.T) {
	tok, err := GenerateToken()
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(tok)
	require.NoError(t, err, "token must be URL-safe base64, it ends up in scanner payloads")
	assert.Len(t, raw, 32)
}

func TestGenerateTokenUnique(t *testing.T) {
	seen := make(map[string]bool, 100)
	for i := 0; i < 100; i++ {
		tok, err := GenerateToken()
		require.NoError(t, err)
		assert.False(t, seen[tok], "duplicate token generated")
		seen[tok] = true
	}
}

func TestIssueLocksUserRowFirst(t *testing.T) {
	// Two concurrent issues for one user must serialize on the user
	// row: credential-row locks cannot cover the no-prior-credential
	// case, and a post-wait re-read never sees the winner's insert.
	// The ordered expectations pin the lock before any credential
	// statement.
	svc, mock := newServiceWithMock(t)
	userID := uuid.New()

	mock.ExpectQuery(`(?s)SELECT "user_id" FROM "users" WHERE user_id = .+ FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(userID.String()))
	mock.ExpectExec(`UPDATE "credentials" SET "credential_is_active"=.+ WHERE credential_user_id = .+ AND credential_is_active = TRUE`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "credentials"`).
		WillReturnRows(sqlmock.NewRows([]string{"credential_id"}).AddRow(uuid.NewString()))

	cred, err := svc.Issue(svc.DB, userID)
	require.NoError(t, err)
	assert.Equal(t, userID, cred.CredentialUserId)
	assert.True(t, cred.CredentialIsActive)
	assert.NotEmpty(t, cred.CredentialToken)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIssueUnknownUser(t *testing.T) {
	// No user row, no lock point: the issue fails before touching the
	// credentials table.
	svc, mock := newServiceWithMock(t)

	mock.ExpectQuery(`(?s)SELECT "user_id" FROM "users" WHERE user_id = .+ FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	_, err := svc.Issue(svc.DB, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDefaultExpiry(t *testing.T) {
	svc := New(nil, &configs.Settings{CredentialExpiryDays: 365})
	issued := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2027, 3, 1, 9, 30, 0, 0, time.UTC), svc.DefaultExpiry(issued))

	short := New(nil, &configs.Settings{CredentialExpiryDays: 30})
	assert.Equal(t, time.Date(2026, 3, 31, 9, 30, 0, 0, time.UTC), short.DefaultExpiry(issued))
}
