// Package photos stores the ordered photo references of local gifts.
package photos

import "context"

type Repository interface {
	AddBatch(ctx context.Context, giftID string, urls []string) error
	ListByGift(ctx context.Context, giftID string) ([]string, error)
}
