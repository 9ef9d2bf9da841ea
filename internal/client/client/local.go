package client

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/giftbox/internal/client/repositories/gifts"
	"github.com/dmitrijs2005/giftbox/internal/client/repositories/photos"
	"github.com/dmitrijs2005/giftbox/internal/dbx"
	"github.com/dmitrijs2005/giftbox/internal/gift"
	"github.com/dmitrijs2005/giftbox/internal/logging"
	"github.com/dmitrijs2005/giftbox/internal/media"
)

var newGiftID = uuid.NewString

// LocalStore is a gift.Store backed by an SQLite database.
type LocalStore struct {
	db  *sql.DB
	log logging.Logger
	now func() time.Time
}

func NewLocalStore(db *sql.DB, log logging.Logger) *LocalStore {
	if log == nil {
		log = logging.Nop()
	}
	return &LocalStore{db: db, log: log, now: time.Now}
}

// OpenLocalStore opens and migrates the database at dsn.
func OpenLocalStore(ctx context.Context, dsn string, log logging.Logger) (*LocalStore, error) {
	db, err := InitDatabase(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	return NewLocalStore(db, log), nil
}

func (s *LocalStore) CreateGift(ctx context.Context, f gift.Fields) (*gift.Gift, error) {
	if err := gift.ValidateFields(f); err != nil {
		return nil, err
	}

	g := &gift.Gift{
		ID:            newGiftID(),
		SenderName:    f.SenderName,
		RecipientName: f.RecipientName,
		Message:       f.Message,
		VoiceRef:      f.VoiceRef,
		PhotoRefs:     []string{},
		CreatedAt:     s.now().UTC(),
	}
	if err := gifts.NewSQLiteRepository(s.db).Create(ctx, g); err != nil {
		return nil, err
	}
	s.log.Debug(ctx, "gift stored locally", "id", g.ID)
	return g, nil
}

func (s *LocalStore) AddPhotos(ctx context.Context, giftID string, refs []string) error {
	if len(refs) == 0 {
		return nil
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := gifts.NewSQLiteRepository(tx).GetByID(ctx, giftID); err != nil {
			return err
		}
		return photos.NewSQLiteRepository(tx).AddBatch(ctx, giftID, refs)
	})
}

func (s *LocalStore) GetGift(ctx context.Context, id string) (*gift.Gift, error) {
	g, err := gifts.NewSQLiteRepository(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	refs, err := photos.NewSQLiteRepository(s.db).ListByGift(ctx, id)
	if err != nil {
		return nil, err
	}
	if refs == nil {
		refs = []string{}
	}
	g.PhotoRefs = refs
	return g, nil
}

// MarkOpened records the first opening. Later calls leave the marker as is.
func (s *LocalStore) MarkOpened(ctx context.Context, id string) error {
	written, err := gifts.NewSQLiteRepository(s.db).MarkOpened(ctx, id, s.now())
	if err != nil {
		return err
	}
	s.log.Debug(ctx, "mark opened", "id", id, "written", written)
	return nil
}

// UploadFile inlines the blob, so the reference resolves without a server.
func (s *LocalStore) UploadFile(ctx context.Context, data []byte, path, contentType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty file %q", path)
	}
	return media.DataURI(&gift.MediaFile{Name: path, ContentType: contentType, Data: data}), nil
}

func (s *LocalStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *LocalStore) Close() error {
	return s.db.Close()
}
