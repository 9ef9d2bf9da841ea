// Package gifts stores gift records in the local SQLite database.
package gifts

import (
	"context"
	"time"

	"github.com/dmitrijs2005/giftbox/internal/gift"
)

type Repository interface {
	Create(ctx context.Context, g *gift.Gift) error
	GetByID(ctx context.Context, id string) (*gift.Gift, error)
	MarkOpened(ctx context.Context, id string, at time.Time) (bool, error)
}
