package gift

import "context"

// Store persists gifts and their media. Implementations exist for the local
// SQLite database and for the hosted backend.
type Store interface {
	// CreateGift writes the gift record and assigns its ID and CreatedAt.
	CreateGift(ctx context.Context, f Fields) (*Gift, error)

	// AddPhotos associates photo references with an existing gift.
	AddPhotos(ctx context.Context, giftID string, refs []string) error

	// GetGift loads a gift with its photo references. It fails with
	// ErrNotFound when no such gift exists.
	GetGift(ctx context.Context, id string) (*Gift, error)

	// MarkOpened sets the opened marker. Deployments may turn it into a
	// permanent no-op, so callers must not depend on the write landing.
	MarkOpened(ctx context.Context, id string) error

	// UploadFile stores a media blob and returns a reference a reveal page
	// can resolve.
	UploadFile(ctx context.Context, data []byte, path, contentType string) (string, error)
}
