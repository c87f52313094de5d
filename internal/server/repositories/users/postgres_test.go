package users

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentdesk/internal/common"
	"studentdesk/internal/server/models"
)

func newMockRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewPostgresRepository(db), mock
}

func userRows(user *models.User) *sqlmock.Rows {
	var lockedUntil, lastLogin sql.NullTime
	if user.LockedUntil != nil {
		lockedUntil = sql.NullTime{Time: *user.LockedUntil, Valid: true}
	}
	if user.LastLogin != nil {
		lastLogin = sql.NullTime{Time: *user.LastLogin, Valid: true}
	}
	return sqlmock.NewRows([]string{
		"id", "username", "email", "password_hash", "password_salt",
		"failed_login_attempts", "locked_until", "last_login", "created_at",
	}).AddRow(user.ID, user.Username, user.Email, user.PasswordHash, user.PasswordSalt,
		user.FailedLoginAttempts, lockedUntil, lastLogin, user.CreatedAt)
}

func TestCreate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("alice", "alice@example.com", []byte("hash"), []byte("salt")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("u-1"))

	user := &models.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: []byte("hash"),
		PasswordSalt: []byte("salt"),
	}

	created, err := repo.Create(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, "u-1", created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByUsername(t *testing.T) {
	repo, mock := newMockRepo(t)

	locked := time.Now().Add(10 * time.Minute)
	want := &models.User{
		ID:                  "u-1",
		Username:            "alice",
		Email:               "alice@example.com",
		PasswordHash:        []byte("hash"),
		PasswordSalt:        []byte("salt"),
		FailedLoginAttempts: 3,
		LockedUntil:         &locked,
		CreatedAt:           time.Now(),
	}

	mock.ExpectQuery(`SELECT .+ FROM users WHERE username = \$1`).
		WithArgs("alice").
		WillReturnRows(userRows(want))

	user, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, want.ID, user.ID)
	assert.Equal(t, 3, user.FailedLoginAttempts)
	require.NotNil(t, user.LockedUntil)
	assert.Nil(t, user.LastLogin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByUsernameNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE username = \$1`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByUsernameForUpdate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE username = \$1 FOR UPDATE`).
		WithArgs("alice").
		WillReturnRows(userRows(&models.User{ID: "u-1", Username: "alice", CreatedAt: time.Now()}))

	user, err := repo.GetByUsernameForUpdate(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsernameExists(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`)).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.UsernameExists(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordLoginSuccess(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET`)).
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.RecordLoginSuccess(context.Background(), "u-1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordLoginFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET`)).
		WithArgs("u-1", 2, sql.NullTime{}).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.RecordLoginFailure(context.Background(), "u-1", 2, nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordLoginFailureWithLock(t *testing.T) {
	repo, mock := newMockRepo(t)

	until := time.Now().Add(15 * time.Minute)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET`)).
		WithArgs("u-1", 5, sql.NullTime{Time: until, Valid: true}).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.RecordLoginFailure(context.Background(), "u-1", 5, &until)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
