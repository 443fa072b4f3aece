package resource

import (
	"context"

	domain "kweku/internal/domain/resource"
)

// Store persists Resource state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Resource, error)
	Save(ctx context.Context, value domain.Resource) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, orderBy string, ascending bool) ([]domain.Resource, error)
	Count(ctx context.Context) (int, error)
}
