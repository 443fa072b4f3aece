package account

import (
	"context"

	domain "kweku/internal/domain/account"
)

// Store persists Account state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Account, error)
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
	Save(ctx context.Context, value domain.Account) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, orderBy string, ascending bool) ([]domain.Account, error)
	Count(ctx context.Context) (int, error)
}
