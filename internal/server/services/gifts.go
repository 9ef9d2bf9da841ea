// Package services holds the server's business logic: gift creation,
// photo association, lookup, the opened marker policy and media upload
// slots.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/giftbox/internal/dbx"
	"github.com/dmitrijs2005/giftbox/internal/gift"
	"github.com/dmitrijs2005/giftbox/internal/logging"
	"github.com/dmitrijs2005/giftbox/internal/server/auth"
	"github.com/dmitrijs2005/giftbox/internal/server/cache"
	sc "github.com/dmitrijs2005/giftbox/internal/server/config"
	"github.com/dmitrijs2005/giftbox/internal/server/models"
	"github.com/dmitrijs2005/giftbox/internal/server/repositories/repomanager"
)

var newGiftID = uuid.NewString

type GiftService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cache       cache.GiftCache
	config      *sc.Config
	log         logging.Logger
	now         func() time.Time
}

func NewGiftService(db *sql.DB, repomanager repomanager.RepositoryManager, gc cache.GiftCache, config *sc.Config, log logging.Logger) *GiftService {
	if gc == nil {
		gc = cache.Nop{}
	}
	return &GiftService{
		db:          db,
		repomanager: repomanager,
		cache:       gc,
		config:      config,
		log:         log.With("module", "gifts"),
		now:         time.Now,
	}
}

// Create validates f and writes a new gift record.
func (s *GiftService) Create(ctx context.Context, f gift.Fields) (*gift.Gift, error) {
	if err := gift.ValidateFields(f); err != nil {
		return nil, err
	}

	row := &models.Gift{
		ID:            newGiftID(),
		SenderName:    f.SenderName,
		RecipientName: f.RecipientName,
		Message:       f.Message,
		VoiceRef:      f.VoiceRef,
	}
	if err := s.repomanager.Gifts(s.db).Create(ctx, row); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "gift created", "gift_id", row.ID)
	return toGift(row, nil), nil
}

// AddPhotos appends refs to an existing gift in one transaction.
func (s *GiftService) AddPhotos(ctx context.Context, giftID string, refs []string) error {
	if !validID(giftID) {
		return gift.ErrNotFound
	}
	if len(refs) == 0 {
		return nil
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Gifts(tx).GetByID(ctx, giftID); err != nil {
			return err
		}
		return s.repomanager.Photos(tx).AddBatch(ctx, giftID, refs)
	})
	if err != nil {
		return err
	}

	s.cache.Delete(ctx, giftID)
	s.log.Info(ctx, "photos added", "gift_id", giftID, "count", len(refs))
	return nil
}

// Get loads a gift with its ordered photo refs. Ids that are not UUIDs
// cannot exist and are reported as ErrNotFound without a query.
func (s *GiftService) Get(ctx context.Context, id string) (*gift.Gift, error) {
	if !validID(id) {
		return nil, gift.ErrNotFound
	}
	if g, ok := s.cache.Get(ctx, id); ok {
		return g, nil
	}

	row, err := s.repomanager.Gifts(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	refs, err := s.repomanager.Photos(s.db).ListByGift(ctx, id)
	if err != nil {
		return nil, err
	}

	g := toGift(row, refs)
	s.cache.Set(ctx, g)
	return g, nil
}

// MarkOpened sets the opened marker when the policy allows it: either the
// deployment enables updates for everyone or the caller holds a service
// key. Otherwise it succeeds without writing. written reports whether the
// marker was set by this call.
func (s *GiftService) MarkOpened(ctx context.Context, id string) (written bool, err error) {
	if !s.config.AllowOpenedUpdates && auth.RoleFromContext(ctx) != auth.RoleService {
		s.log.Debug(ctx, "opened update skipped by policy", "gift_id", id)
		return false, nil
	}
	if !validID(id) {
		return false, gift.ErrNotFound
	}

	written, err = s.repomanager.Gifts(s.db).MarkOpened(ctx, id, s.now().UTC())
	if err != nil {
		return false, fmt.Errorf("mark opened: %w", err)
	}
	if written {
		s.cache.Delete(ctx, id)
		s.log.Info(ctx, "gift opened", "gift_id", id)
	}
	return written, nil
}

func validID(id string) bool {
	return uuid.Validate(id) == nil
}

func toGift(row *models.Gift, refs []string) *gift.Gift {
	g := &gift.Gift{
		ID:            row.ID,
		SenderName:    row.SenderName,
		RecipientName: row.RecipientName,
		Message:       row.Message,
		PhotoRefs:     refs,
		VoiceRef:      row.VoiceRef,
		CreatedAt:     row.CreatedAt,
	}
	if g.PhotoRefs == nil {
		g.PhotoRefs = []string{}
	}
	if row.OpenedAt.Valid {
		t := row.OpenedAt.Time
		g.OpenedAt = &t
	}
	return g
}
