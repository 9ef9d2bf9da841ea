package photos

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/giftbox/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// AddBatch appends urls after the gift's existing photos in one INSERT.
func (r *SQLiteRepository) AddBatch(ctx context.Context, giftID string, urls []string) error {
	if len(urls) == 0 {
		return nil
	}

	var next int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM gift_photos WHERE gift_id=?`, giftID).Scan(&next)
	if err != nil {
		return fmt.Errorf("failed to read photo position: %w", err)
	}

	rows := make([]string, len(urls))
	args := make([]any, 0, 3*len(urls))
	for i, u := range urls {
		rows[i] = "(?, ?, ?)"
		args = append(args, giftID, u, next+i)
	}

	query := `INSERT INTO gift_photos (gift_id, photo_url, position) VALUES ` + strings.Join(rows, ", ")
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert photos: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListByGift(ctx context.Context, giftID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT photo_url FROM gift_photos WHERE gift_id=? ORDER BY position`, giftID)
	if err != nil {
		return nil, fmt.Errorf("failed to select photos: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
