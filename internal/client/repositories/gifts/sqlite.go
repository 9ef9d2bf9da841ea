package gifts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/giftbox/internal/dbx"
	"github.com/dmitrijs2005/giftbox/internal/gift"
)

// SQLite has no timestamp type; times are stored as RFC 3339 text in UTC.
const timeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts g. PhotoRefs are stored separately by the photos repository.
func (r *SQLiteRepository) Create(ctx context.Context, g *gift.Gift) error {
	query := `INSERT INTO gifts (id, sender_name, recipient_name, message, voice_ref, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, g.ID, g.SenderName, g.RecipientName, g.Message, g.VoiceRef,
		g.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to insert gift: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*gift.Gift, error) {
	query := `SELECT id, sender_name, recipient_name, message, voice_ref, created_at, opened_at
		FROM gifts WHERE id=?`

	var (
		g        = &gift.Gift{}
		created  string
		openedAt sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&g.ID, &g.SenderName, &g.RecipientName, &g.Message, &g.VoiceRef, &created, &openedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gift.ErrNotFound
		}
		return nil, fmt.Errorf("failed to select gift: %w", err)
	}

	if g.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return nil, fmt.Errorf("bad created_at %q: %w", created, err)
	}
	if openedAt.Valid {
		t, err := time.Parse(timeLayout, openedAt.String)
		if err != nil {
			return nil, fmt.Errorf("bad opened_at %q: %w", openedAt.String, err)
		}
		g.OpenedAt = &t
	}
	return g, nil
}

// MarkOpened sets opened_at once and reports whether this call wrote it.
func (r *SQLiteRepository) MarkOpened(ctx context.Context, id string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE gifts SET opened_at=? WHERE id=? AND opened_at IS NULL`,
		at.UTC().Format(timeLayout), id)
	if err != nil {
		return false, fmt.Errorf("failed to mark gift opened: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	if n == 1 {
		return true, nil
	}

	var exists int
	err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM gifts WHERE id=?`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check gift: %w", err)
	}
	if exists == 0 {
		return false, gift.ErrNotFound
	}
	return false, nil
}
