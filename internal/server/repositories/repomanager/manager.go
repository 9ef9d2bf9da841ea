package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/giftbox/internal/dbx"
	"github.com/dmitrijs2005/giftbox/internal/server/repositories/gifts"
	"github.com/dmitrijs2005/giftbox/internal/server/repositories/photos"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Gifts(db dbx.DBTX) gifts.Repository
	Photos(db dbx.DBTX) photos.Repository
}
