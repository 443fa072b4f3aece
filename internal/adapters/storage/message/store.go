package message

import (
	"context"

	domain "kweku/internal/domain/message"
)

// Store persists Message state.
//
// There is deliberately no unread-count query: the dashboard derives the
// unread count by filtering the fetched message set on the read flag, so it
// is always recomputed from the latest snapshot.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Message, error)
	Save(ctx context.Context, value domain.Message) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, orderBy string, ascending bool) ([]domain.Message, error)
	Count(ctx context.Context) (int, error)
}
