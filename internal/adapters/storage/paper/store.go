package paper

import (
	"context"

	domain "kweku/internal/domain/paper"
)

// Store persists PastPaper state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.PastPaper, error)
	Save(ctx context.Context, value domain.PastPaper) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, orderBy string, ascending bool) ([]domain.PastPaper, error)
	Count(ctx context.Context) (int, error)
}
