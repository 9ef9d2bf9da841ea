package photos

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
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
	posQ    = `^SELECT\s+COALESCE\(MAX\(position\)\s*\+\s*1,\s*0\)\s+FROM\s+gift_photos\s+WHERE\s+gift_id=\$1$`
	insertQ = `^INSERT\s+INTO\s+gift_photos\s+\(gift_id,\s*photo_url,\s*position\)\s+VALUES\s+\(\$1,\s*\$2,\s*\$3\),\s*\(\$1,\s*\$4,\s*\$5\)$`
	listQ   = `^SELECT\s+photo_url\s+FROM\s+gift_photos\s+WHERE\s+gift_id=\$1\s+ORDER\s+BY\s+position$`
)

func TestAddBatch_SingleStatement(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(posQ).WithArgs("g1").WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(2))
	mock.ExpectExec(insertQ).
		WithArgs("g1", "https://cdn/a.png", 2, "https://cdn/b.png", 3).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.AddBatch(context.Background(), "g1", []string{"https://cdn/a.png", "https://cdn/b.png"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddBatch_EmptyIsNoop(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	require.NoError(t, repo.AddBatch(context.Background(), "g1", nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddBatch_Errors(t *testing.T) {
	t.Run("position query", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(posQ).WillReturnError(errors.New("boom"))
		err := repo.AddBatch(context.Background(), "g1", []string{"a", "b"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "photo position")
	})

	t.Run("insert", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(posQ).WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(0))
		mock.ExpectExec(insertQ).WillReturnError(errors.New("fk violation"))
		err := repo.AddBatch(context.Background(), "g1", []string{"a", "b"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to insert photos")
	})

	t.Run("short write", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(posQ).WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(0))
		mock.ExpectExec(insertQ).WillReturnResult(sqlmock.NewResult(0, 1))
		err := repo.AddBatch(context.Background(), "g1", []string{"a", "b"})
		require.Error(t, err)
	})
}

func TestListByGift(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQ).WithArgs("g1").
		WillReturnRows(sqlmock.NewRows([]string{"photo_url"}).AddRow("a").AddRow("b"))

	got, err := repo.ListByGift(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestListByGift_QueryError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQ).WillReturnError(errors.New("boom"))
	_, err := repo.ListByGift(context.Background(), "g1")
	require.Error(t, err)
}
