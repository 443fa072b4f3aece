package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"kweku/internal/application/session"
	domain "kweku/internal/domain/account"
)

// SeedAdminDeps holds stores needed for admin seeding.
type SeedAdminDeps struct {
	AccountStore seedAccountStore
}

type seedAccountStore interface {
	Save(ctx context.Context, a domain.Account) error
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
}

// ExecuteSeedAdmin creates the admin account on first start if it does not
// already exist. Idempotent: an existing account is left untouched, including
// any password change the admin has made since.
// POST: An account for session.KnownAdminEmail exists
func ExecuteSeedAdmin(ctx context.Context, password string, deps SeedAdminDeps) error {
	_, err := deps.AccountStore.GetByEmail(ctx, session.KnownAdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("seed admin: look up account: %w", err)
	}

	acct := domain.Account{
		ID:        uuid.New().String(),
		Email:     session.KnownAdminEmail,
		Confirmed: true,
		CreatedAt: time.Now().UTC(),
	}
	if err := acct.SetPassword(password); err != nil {
		return fmt.Errorf("seed admin: set password: %w", err)
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return fmt.Errorf("seed admin: save: %w", err)
	}

	slog.Info("seed_event", "event", "admin_account_created", "email", session.KnownAdminEmail)
	return nil
}
