package post

import (
	"context"

	domain "kweku/internal/domain/post"
)

// Store persists Post state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Post, error)
	Save(ctx context.Context, value domain.Post) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, orderBy string, ascending bool) ([]domain.Post, error)
	Count(ctx context.Context) (int, error)
}
