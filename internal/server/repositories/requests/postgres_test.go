package requests

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentdesk/internal/server/models"
)

func newMockRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewPostgresRepository(db), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO requests`)).
		WithArgs("u-1", "complaint", "Projector broken", "Room 101").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "created_at", "updated_at"}).
			AddRow("r-1", "pending", now, now))

	req, err := repo.Create(context.Background(), &models.SupportRequest{
		UserID:      "u-1",
		RequestType: "complaint",
		Title:       "Projector broken",
		Description: "Room 101",
	})
	require.NoError(t, err)
	assert.Equal(t, "r-1", req.ID)
	assert.Equal(t, "pending", req.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUserID(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "request_type", "title", "description", "status", "created_at", "updated_at"}).
		AddRow("r-2", "u-1", "leave", "Sick leave", "Flu", "pending", now, now).
		AddRow("r-1", "u-1", "complaint", "Projector", "Broken", "resolved", now.Add(-time.Hour), now)

	mock.ExpectQuery(`SELECT .+ FROM requests`).
		WithArgs("u-1", 50).
		WillReturnRows(rows)

	list, err := repo.ListByUserID(context.Background(), "u-1", 50)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "r-2", list[0].ID)
	assert.Equal(t, "resolved", list[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUserIDEmpty(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM requests`).
		WithArgs("u-9", 50).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "request_type", "title", "description", "status", "created_at", "updated_at"}))

	list, err := repo.ListByUserID(context.Background(), "u-9", 50)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}
