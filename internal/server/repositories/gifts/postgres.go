package gifts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/giftbox/internal/dbx"
	"github.com/dmitrijs2005/giftbox/internal/gift"
	"github.com/dmitrijs2005/giftbox/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the gift and fills CreatedAt from the database clock.
func (r *PostgresRepository) Create(ctx context.Context, g *models.Gift) error {
	query := `INSERT INTO gifts (id, sender_name, recipient_name, message, voice_ref)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, g.ID, g.SenderName, g.RecipientName, g.Message, g.VoiceRef).
		Scan(&g.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert gift: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Gift, error) {
	query := `SELECT id, sender_name, recipient_name, message, voice_ref, created_at, opened_at
		FROM gifts WHERE id=$1`

	g := &models.Gift{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&g.ID, &g.SenderName, &g.RecipientName, &g.Message, &g.VoiceRef, &g.CreatedAt, &g.OpenedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gift.ErrNotFound
		}
		return nil, fmt.Errorf("failed to select gift: %w", err)
	}
	return g, nil
}

// MarkOpened sets opened_at once. It reports false when the marker was
// already set; a missing gift is ErrNotFound.
func (r *PostgresRepository) MarkOpened(ctx context.Context, id string, at time.Time) (bool, error) {
	query := `UPDATE gifts SET opened_at=$2 WHERE id=$1 AND opened_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, id, at)
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

	var exists bool
	err = r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM gifts WHERE id=$1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check gift: %w", err)
	}
	if !exists {
		return false, gift.ErrNotFound
	}
	return false, nil
}
