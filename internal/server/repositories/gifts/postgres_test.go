package gifts

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/giftbox/internal/gift"
	"github.com/dmitrijs2005/giftbox/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const (
	insertQ = `(?s)^INSERT\s+INTO\s+gifts\s*\(id,\s*sender_name,\s*recipient_name,\s*message,\s*voice_ref\)\s*VALUES.*RETURNING\s+created_at$`
	selectQ = `(?s)^SELECT\s+id,\s*sender_name,.*FROM\s+gifts\s+WHERE\s+id=\$1$`
	updateQ = `^UPDATE\s+gifts\s+SET\s+opened_at=\$2\s+WHERE\s+id=\$1\s+AND\s+opened_at\s+IS\s+NULL$`
	existsQ = `^SELECT\s+EXISTS\s+\(SELECT\s+1\s+FROM\s+gifts\s+WHERE\s+id=\$1\)$`
)

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Date(2025, 12, 24, 18, 0, 0, 0, time.UTC)
	mock.ExpectQuery(insertQ).
		WithArgs("g1", "Santa", "Alice", "Hi", "").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	g := &models.Gift{ID: "g1", SenderName: "Santa", RecipientName: "Alice", Message: "Hi"}
	require.NoError(t, repo.Create(context.Background(), g))
	assert.Equal(t, created, g.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).WillReturnError(errors.New("boom"))

	err := repo.Create(context.Background(), &models.Gift{ID: "g1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert gift")
}

func TestGetByID(t *testing.T) {
	cols := []string{"id", "sender_name", "recipient_name", "message", "voice_ref", "created_at", "opened_at"}
	created := time.Date(2025, 12, 24, 18, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(selectQ).WithArgs("g1").
			WillReturnRows(sqlmock.NewRows(cols).AddRow("g1", "Santa", "Alice", "Hi", "https://cdn/v.wav", created, nil))

		g, err := repo.GetByID(context.Background(), "g1")
		require.NoError(t, err)
		assert.Equal(t, "Alice", g.RecipientName)
		assert.Equal(t, "https://cdn/v.wav", g.VoiceRef)
		assert.False(t, g.OpenedAt.Valid)
	})

	t.Run("missing maps to ErrNotFound", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(selectQ).WithArgs("nope").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), "nope")
		assert.ErrorIs(t, err, gift.ErrNotFound)
	})

	t.Run("db error is wrapped", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(selectQ).WillReturnError(errors.New("conn reset"))

		_, err := repo.GetByID(context.Background(), "g1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, gift.ErrNotFound)
	})
}

func TestMarkOpened(t *testing.T) {
	at := time.Date(2025, 12, 25, 8, 0, 0, 0, time.UTC)

	t.Run("first write", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(updateQ).WithArgs("g1", at).WillReturnResult(sqlmock.NewResult(0, 1))

		written, err := repo.MarkOpened(context.Background(), "g1", at)
		require.NoError(t, err)
		assert.True(t, written)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already opened", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(updateQ).WithArgs("g1", at).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(existsQ).WithArgs("g1").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		written, err := repo.MarkOpened(context.Background(), "g1", at)
		require.NoError(t, err)
		assert.False(t, written)
	})

	t.Run("unknown gift", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(updateQ).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(existsQ).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		_, err := repo.MarkOpened(context.Background(), "g1", at)
		assert.ErrorIs(t, err, gift.ErrNotFound)
	})

	t.Run("exec error", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(updateQ).WillReturnError(errors.New("boom"))

		_, err := repo.MarkOpened(context.Background(), "g1", at)
		require.Error(t, err)
	})
}
