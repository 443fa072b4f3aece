package authclient

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	accountStore "kweku/internal/adapters/storage/account"
	"kweku/internal/application/session"
	domain "kweku/internal/domain/account"
)

// ErrUserExists is returned by SignUp when the email is already registered.
var ErrUserExists = errors.New("user already registered")

// Local implements session.AuthClient against the accounts table: password
// sign-in, sign-up, a current-session snapshot and a session-change event
// stream.
//
// Unconfirmed accounts may still sign in; confirmation is tracked but not
// enforced, since no confirmation email leaves this system.
type Local struct {
	accounts accountStore.Store

	mu      sync.Mutex
	current *session.Identity
	subs    map[int]func(*session.Identity)
	nextSub int
}

// NewLocal creates a Local auth client over the given account store.
func NewLocal(accounts accountStore.Store) *Local {
	return &Local{
		accounts: accounts,
		subs:     make(map[int]func(*session.Identity)),
	}
}

// SignInWithPassword verifies credentials and establishes the session.
// An unknown email and a wrong password both map to ErrInvalidCredentials so
// callers cannot probe which emails exist.
// POST: On success the session-change stream delivers the new identity
func (c *Local) SignInWithPassword(ctx context.Context, email, password string) (session.Identity, error) {
	acct, err := c.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return session.Identity{}, session.ErrInvalidCredentials
		}
		return session.Identity{}, fmt.Errorf("look up account: %w", err)
	}
	if err := acct.CheckPassword(password); err != nil {
		return session.Identity{}, session.ErrInvalidCredentials
	}

	id := session.Identity{ID: acct.ID, Email: acct.Email, Confirmed: acct.Confirmed}
	c.setCurrent(&id)
	return id, nil
}

// SignUp creates a new, unconfirmed account. No session is established;
// redirectTo is recorded for parity with the remote API but otherwise unused
// because no confirmation email leaves this system.
// POST: Account persisted; returned identity has Confirmed == false
func (c *Local) SignUp(ctx context.Context, email, password, redirectTo string) (session.Identity, error) {
	if _, err := c.accounts.GetByEmail(ctx, email); err == nil {
		return session.Identity{}, ErrUserExists
	} else if !errors.Is(err, sql.ErrNoRows) {
		return session.Identity{}, fmt.Errorf("look up account: %w", err)
	}

	acct := domain.Account{
		ID:        uuid.New().String(),
		Email:     email,
		Confirmed: false,
		CreatedAt: time.Now().UTC(),
	}
	if err := acct.SetPassword(password); err != nil {
		return session.Identity{}, err
	}
	if err := acct.Validate(); err != nil {
		return session.Identity{}, err
	}
	if err := c.accounts.Save(ctx, acct); err != nil {
		return session.Identity{}, fmt.Errorf("save account: %w", err)
	}

	return session.Identity{ID: acct.ID, Email: acct.Email, Confirmed: false}, nil
}

// SignOut tears down the session.
// POST: The session-change stream delivers nil
func (c *Local) SignOut(ctx context.Context) error {
	c.setCurrent(nil)
	return nil
}

// GetSession returns the current identity, if any.
func (c *Local) GetSession(ctx context.Context) (session.Identity, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return session.Identity{}, false, nil
	}
	return *c.current, true, nil
}

// OnSessionChange registers a session-change subscriber.
// POST: Returns an unsubscribe function; safe to call more than once
func (c *Local) OnSessionChange(fn func(*session.Identity)) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// setCurrent replaces the session and notifies subscribers outside the lock.
func (c *Local) setCurrent(id *session.Identity) {
	c.mu.Lock()
	c.current = id
	subs := make([]func(*session.Identity), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(id)
	}
}

// Compile-time check that *Local satisfies session.AuthClient.
var _ session.AuthClient = (*Local)(nil)
