package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/giftbox/internal/dbx"
	"github.com/dmitrijs2005/giftbox/internal/gift"
	"github.com/dmitrijs2005/giftbox/internal/logging"
	"github.com/dmitrijs2005/giftbox/internal/server/auth"
	sc "github.com/dmitrijs2005/giftbox/internal/server/config"
	"github.com/dmitrijs2005/giftbox/internal/server/models"
	"github.com/dmitrijs2005/giftbox/internal/server/repositories/gifts"
	"github.com/dmitrijs2005/giftbox/internal/server/repositories/photos"
	"github.com/dmitrijs2005/giftbox/internal/server/repositories/repomanager"
)

const giftID = "0b6f1c8e-2d4a-4f5e-9a61-3c2b7d8e9f10"

// -------- test fakes --------

type fakeGiftsRepo struct {
	gifts.Repository
	rows      map[string]*models.Gift
	createErr error
	getErr    error
	markErr   error
	marked    []time.Time
}

func (f *fakeGiftsRepo) Create(ctx context.Context, g *models.Gift) error {
	if f.createErr != nil {
		return f.createErr
	}
	g.CreatedAt = time.Date(2025, 12, 24, 18, 0, 0, 0, time.UTC)
	f.rows[g.ID] = g
	return nil
}

func (f *fakeGiftsRepo) GetByID(ctx context.Context, id string) (*models.Gift, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	g, ok := f.rows[id]
	if !ok {
		return nil, gift.ErrNotFound
	}
	return g, nil
}

func (f *fakeGiftsRepo) MarkOpened(ctx context.Context, id string, at time.Time) (bool, error) {
	if f.markErr != nil {
		return false, f.markErr
	}
	g, ok := f.rows[id]
	if !ok {
		return false, gift.ErrNotFound
	}
	if g.OpenedAt.Valid {
		return false, nil
	}
	g.OpenedAt = sql.NullTime{Time: at, Valid: true}
	f.marked = append(f.marked, at)
	return true, nil
}

type fakePhotosRepo struct {
	photos.Repository
	refs   map[string][]string
	addErr error
}

func (f *fakePhotosRepo) AddBatch(ctx context.Context, giftID string, urls []string) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.refs[giftID] = append(f.refs[giftID], urls...)
	return nil
}

func (f *fakePhotosRepo) ListByGift(ctx context.Context, giftID string) ([]string, error) {
	return f.refs[giftID], nil
}

type fakeRM struct {
	repomanager.RepositoryManager
	g *fakeGiftsRepo
	p *fakePhotosRepo
}

func (m *fakeRM) Gifts(db dbx.DBTX) gifts.Repository   { return m.g }
func (m *fakeRM) Photos(db dbx.DBTX) photos.Repository { return m.p }

type fakeCache struct {
	data    map[string]*gift.Gift
	deleted []string
}

func (c *fakeCache) Get(_ context.Context, id string) (*gift.Gift, bool) {
	g, ok := c.data[id]
	return g, ok
}
func (c *fakeCache) Set(_ context.Context, g *gift.Gift) { c.data[g.ID] = g }
func (c *fakeCache) Delete(_ context.Context, id string) {
	delete(c.data, id)
	c.deleted = append(c.deleted, id)
}

type fixture struct {
	svc   *GiftService
	mock  sqlmock.Sqlmock
	rm    *fakeRM
	cache *fakeCache
	cfg   *sc.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &sc.Config{}
	cfg.LoadDefaults()

	rm := &fakeRM{
		g: &fakeGiftsRepo{rows: map[string]*models.Gift{}},
		p: &fakePhotosRepo{refs: map[string][]string{}},
	}
	c := &fakeCache{data: map[string]*gift.Gift{}}

	svc := NewGiftService(db, rm, c, cfg, logging.Nop())
	svc.now = func() time.Time { return time.Date(2025, 12, 25, 8, 0, 0, 0, time.UTC) }

	orig := newGiftID
	newGiftID = func() string { return giftID }
	t.Cleanup(func() { newGiftID = orig })

	return &fixture{svc: svc, mock: mock, rm: rm, cache: c, cfg: cfg}
}

func (f *fixture) seed() {
	f.rm.g.rows[giftID] = &models.Gift{
		ID: giftID, SenderName: "Santa", RecipientName: "Alice", Message: "Hi",
		CreatedAt: time.Date(2025, 12, 24, 18, 0, 0, 0, time.UTC),
	}
}

func TestCreate(t *testing.T) {
	f := newFixture(t)

	g, err := f.svc.Create(context.Background(), gift.Fields{SenderName: "Santa", RecipientName: "Alice", Message: "Hi"})
	require.NoError(t, err)
	assert.Equal(t, giftID, g.ID)
	assert.False(t, g.CreatedAt.IsZero())
	assert.Empty(t, g.PhotoRefs)
	assert.Contains(t, f.rm.g.rows, giftID)
}

func TestCreate_ValidationFailsBeforeWrite(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), gift.Fields{SenderName: "Santa", RecipientName: " ", Message: "Hi"})
	var ve *gift.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "recipientName", ve.Field)
	assert.Empty(t, f.rm.g.rows)
}

func TestCreate_RepoError(t *testing.T) {
	f := newFixture(t)
	f.rm.g.createErr = errors.New("db down")

	_, err := f.svc.Create(context.Background(), gift.Fields{SenderName: "a", RecipientName: "b", Message: "c"})
	require.Error(t, err)
}

func TestAddPhotos_CommitsAndInvalidatesCache(t *testing.T) {
	f := newFixture(t)
	f.seed()
	f.cache.data[giftID] = &gift.Gift{ID: giftID}

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	err := f.svc.AddPhotos(context.Background(), giftID, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, f.rm.p.refs[giftID])
	assert.Equal(t, []string{giftID}, f.cache.deleted)
	require.NoError(t, f.mock.ExpectationsWereMet())
}

func TestAddPhotos_RollsBackOnFailure(t *testing.T) {
	f := newFixture(t)
	f.seed()
	f.rm.p.addErr = errors.New("insert failed")

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	err := f.svc.AddPhotos(context.Background(), giftID, []string{"a"})
	require.Error(t, err)
	assert.Empty(t, f.cache.deleted)
	require.NoError(t, f.mock.ExpectationsWereMet())
}

func TestAddPhotos_UnknownGift(t *testing.T) {
	f := newFixture(t)

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	err := f.svc.AddPhotos(context.Background(), giftID, []string{"a"})
	assert.ErrorIs(t, err, gift.ErrNotFound)

	err = f.svc.AddPhotos(context.Background(), "not-a-uuid", []string{"a"})
	assert.ErrorIs(t, err, gift.ErrNotFound)
}

func TestAddPhotos_NoRefsIsNoop(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.AddPhotos(context.Background(), giftID, nil))
	require.NoError(t, f.mock.ExpectationsWereMet())
}

func TestGet(t *testing.T) {
	f := newFixture(t)
	f.seed()
	f.rm.p.refs[giftID] = []string{"p1", "p2"}

	g, err := f.svc.Get(context.Background(), giftID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", g.RecipientName)
	assert.Equal(t, []string{"p1", "p2"}, g.PhotoRefs)
	assert.Nil(t, g.OpenedAt)
	assert.Contains(t, f.cache.data, giftID, "read result is cached")
}

func TestGet_ServedFromCache(t *testing.T) {
	f := newFixture(t)
	f.rm.g.getErr = errors.New("must not be called")
	f.cache.data[giftID] = &gift.Gift{ID: giftID, RecipientName: "Cached"}

	g, err := f.svc.Get(context.Background(), giftID)
	require.NoError(t, err)
	assert.Equal(t, "Cached", g.RecipientName)
}

func TestGet_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Get(context.Background(), giftID)
	assert.ErrorIs(t, err, gift.ErrNotFound)

	_, err = f.svc.Get(context.Background(), "'; drop table gifts; --")
	assert.ErrorIs(t, err, gift.ErrNotFound)
}

func TestMarkOpened_Policy(t *testing.T) {
	t.Run("anon without permission is a silent no-op", func(t *testing.T) {
		f := newFixture(t)
		f.seed()

		written, err := f.svc.MarkOpened(context.Background(), giftID)
		require.NoError(t, err)
		assert.False(t, written)
		assert.Empty(t, f.rm.g.marked)
	})

	t.Run("service role writes once", func(t *testing.T) {
		f := newFixture(t)
		f.seed()
		ctx := auth.WithRole(context.Background(), auth.RoleService)

		written, err := f.svc.MarkOpened(ctx, giftID)
		require.NoError(t, err)
		assert.True(t, written)
		assert.Equal(t, []string{giftID}, f.cache.deleted)

		written, err = f.svc.MarkOpened(ctx, giftID)
		require.NoError(t, err)
		assert.False(t, written, "marker is write-once")
		assert.Len(t, f.rm.g.marked, 1)
	})

	t.Run("deployment allows updates", func(t *testing.T) {
		f := newFixture(t)
		f.seed()
		f.cfg.AllowOpenedUpdates = true

		written, err := f.svc.MarkOpened(context.Background(), giftID)
		require.NoError(t, err)
		assert.True(t, written)
		assert.Equal(t, time.Date(2025, 12, 25, 8, 0, 0, 0, time.UTC), f.rm.g.marked[0])
	})

	t.Run("unknown gift", func(t *testing.T) {
		f := newFixture(t)
		f.cfg.AllowOpenedUpdates = true

		_, err := f.svc.MarkOpened(context.Background(), giftID)
		assert.ErrorIs(t, err, gift.ErrNotFound)
	})
}
