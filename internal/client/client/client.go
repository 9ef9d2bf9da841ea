package client

import (
	"context"

	"github.com/dmitrijs2005/giftbox/internal/gift"
)

// Client is a gift.Store the CLI can probe and release.
type Client interface {
	gift.Store
	Ping(ctx context.Context) error
	Close() error
}

var (
	_ Client = (*GRPCClient)(nil)
	_ Client = (*LocalStore)(nil)
)
