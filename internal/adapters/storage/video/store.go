package video

import (
	"context"

	domain "kweku/internal/domain/video"
)

// Store persists Lesson state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Lesson, error)
	Save(ctx context.Context, value domain.Lesson) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, orderBy string, ascending bool) ([]domain.Lesson, error)
	Count(ctx context.Context) (int, error)
}
