package port

import (
	"context"

	"github.com/google/uuid"

	"versepin/internal/domain"
)

// PostRepository defines the contract for post persistence.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	List(ctx context.Context, status domain.PostStatus, offset, limit int) ([]domain.Post, int, error)
	ListAll(ctx context.Context) ([]domain.Post, error)
	UpdateFormatted(ctx context.Context, post *domain.Post) error
	UpdatePublishState(ctx context.Context, post *domain.Post) error
	ClaimQueued(ctx context.Context, limit int) ([]domain.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
