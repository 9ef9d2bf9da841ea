package gifts

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/giftbox/internal/gift"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE gifts (
  id TEXT PRIMARY KEY,
  sender_name TEXT NOT NULL,
  recipient_name TEXT NOT NULL,
  message TEXT NOT NULL,
  voice_ref TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL,
  opened_at TEXT NULL
);
`)
	require.NoError(t, err)
	return db
}

func TestCreateAndGetByID(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	created := time.Date(2025, 12, 24, 18, 30, 0, 123, time.FixedZone("EET", 2*3600))
	g := &gift.Gift{
		ID:            "g1",
		SenderName:    "Bob",
		RecipientName: "Alice",
		Message:       "Merry Christmas",
		VoiceRef:      "data:audio/wav;base64,AAAA",
		CreatedAt:     created,
	}
	require.NoError(t, r.Create(ctx, g))

	got, err := r.GetByID(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, "Bob", got.SenderName)
	assert.Equal(t, "Alice", got.RecipientName)
	assert.Equal(t, "Merry Christmas", got.Message)
	assert.Equal(t, "data:audio/wav;base64,AAAA", got.VoiceRef)
	assert.True(t, created.Equal(got.CreatedAt))
	assert.Nil(t, got.OpenedAt)
}

func TestCreate_DuplicateID(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	g := &gift.Gift{ID: "dup", SenderName: "a", RecipientName: "b", Message: "c", CreatedAt: time.Now()}
	require.NoError(t, r.Create(ctx, g))

	err := r.Create(ctx, g)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert gift")
}

func TestGetByID_NotFound(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	_, err := r.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, gift.ErrNotFound)
}

func TestGetByID_BadTimestamp(t *testing.T) {
	db := setupDB(t)
	_, err := db.Exec(`INSERT INTO gifts (id, sender_name, recipient_name, message, created_at) VALUES ('x','a','b','c','yesterday')`)
	require.NoError(t, err)

	_, err = NewSQLiteRepository(db).GetByID(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad created_at")
}

func TestMarkOpened_WritesOnce(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, &gift.Gift{ID: "g1", SenderName: "a", RecipientName: "b", Message: "c", CreatedAt: time.Now()}))

	first := time.Date(2025, 12, 25, 8, 0, 0, 0, time.UTC)
	written, err := r.MarkOpened(ctx, "g1", first)
	require.NoError(t, err)
	assert.True(t, written)

	written, err = r.MarkOpened(ctx, "g1", first.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, written)

	got, err := r.GetByID(ctx, "g1")
	require.NoError(t, err)
	require.NotNil(t, got.OpenedAt)
	assert.True(t, first.Equal(*got.OpenedAt))
}

func TestMarkOpened_NotFound(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	written, err := r.MarkOpened(context.Background(), "missing", time.Now())
	assert.ErrorIs(t, err, gift.ErrNotFound)
	assert.False(t, written)
}
