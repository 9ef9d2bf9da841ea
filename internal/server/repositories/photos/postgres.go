package photos

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/giftbox/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// AddBatch appends urls after the gift's existing photos with one
// multi-row INSERT. Run it inside a transaction so positions stay dense.
func (r *PostgresRepository) AddBatch(ctx context.Context, giftID string, urls []string) error {
	if len(urls) == 0 {
		return nil
	}

	var next int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM gift_photos WHERE gift_id=$1`, giftID).Scan(&next)
	if err != nil {
		return fmt.Errorf("failed to read photo position: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO gift_photos (gift_id, photo_url, position) VALUES `)
	args := make([]any, 0, 1+2*len(urls))
	args = append(args, giftID)
	for i, u := range urls {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "($1, $%d, $%d)", len(args)+1, len(args)+2)
		args = append(args, u, next+i)
	}

	res, err := r.db.ExecContext(ctx, sb.String(), args...)
	if err != nil {
		return fmt.Errorf("failed to insert photos: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n != int64(len(urls)) {
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
	return nil
}

func (r *PostgresRepository) ListByGift(ctx context.Context, giftID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT photo_url FROM gift_photos WHERE gift_id=$1 ORDER BY position`, giftID)
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
