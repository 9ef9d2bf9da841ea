// Package gifts stores gift records in PostgreSQL.
package gifts

import (
	"context"
	"time"

	"github.com/dmitrijs2005/giftbox/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, g *models.Gift) error
	GetByID(ctx context.Context, id string) (*models.Gift, error)
	MarkOpened(ctx context.Context, id string, at time.Time) (bool, error)
}
