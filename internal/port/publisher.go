package port

import (
	"context"

	"versepin/internal/pinterest"
)

// PinPublisher abstracts the upload of a validated pin record.
type PinPublisher interface {
	CreatePin(ctx context.Context, record *pinterest.PinRecord) (*pinterest.PinResult, error)
}
