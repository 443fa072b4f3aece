package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Manager tracks the current authenticated identity and its derived
// privilege flag. It is constructed once at startup and handed down to the
// handlers that need it; there is no package-level state.
//
// State converges on the auth client's session-change stream: sign-in and
// sign-out mutate local state only through subscription events, never
// directly.
type Manager struct {
	auth AuthClient

	mu         sync.Mutex
	identity   *Identity
	privileged bool
	loading    bool

	unsub     func()
	closeOnce sync.Once
}

// NewManager creates a Manager over the given auth client.
// POST: Manager starts in the loading state until Initialize resolves
func NewManager(auth AuthClient) *Manager {
	return &Manager{auth: auth, loading: true}
}

// Initialize subscribes to the session-change stream and separately requests
// the current session once. The two may complete in either order; apply is
// idempotent and recomputes the privilege flag on every call, so whichever
// path resolves last still leaves a consistent final state and the manager
// can never be permanently stuck loading with a live session.
// PRE: called once, before any SignIn/SignOut
// POST: subscription active; loading cleared once a definitive answer exists
func (m *Manager) Initialize(ctx context.Context) error {
	m.unsub = m.auth.OnSessionChange(m.apply)

	id, ok, err := m.auth.GetSession(ctx)
	if err != nil {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
		return err
	}
	if ok {
		m.apply(&id)
	} else {
		// No persisted session: clear loading but do not clobber an
		// identity a subscription event may already have delivered.
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
	}
	return nil
}

// apply is the session-change handler. It is the only place identity and
// privilege are written.
func (m *Manager) apply(id *Identity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.identity = id
	m.privileged = IsPrivileged(id)
	m.loading = false
}

// Current returns the current identity, or nil when signed out.
func (m *Manager) Current() *Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.identity == nil {
		return nil
	}
	id := *m.identity
	return &id
}

// Privileged reports whether the current identity is the admin.
func (m *Manager) Privileged() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.privileged
}

// Loading reports whether the initial session check is still unresolved.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// SignIn attempts authentication. The ("admin", "admin") alias translates to
// the fixed real credential pair; if that pair does not exist yet, the
// account is created and creation counts as success even though the identity
// is unconfirmed. Every other identifier is treated as an email and passed
// straight through.
// POST: Returns a tagged Result; never panics, never returns an error
func (m *Manager) SignIn(ctx context.Context, identifier, secret string) Result {
	if identifier == adminAlias && secret == adminAliasSecret {
		_, err := m.auth.SignInWithPassword(ctx, KnownAdminEmail, adminRealPassword)
		if err == nil {
			slog.Info("auth_event", "event", "login_success", "email", KnownAdminEmail)
			return Result{Success: true}
		}
		if !errors.Is(err, ErrInvalidCredentials) {
			slog.Info("auth_event", "event", "login_failed", "email", KnownAdminEmail, "reason", err.Error())
			return Result{Reason: err.Error()}
		}

		// Admin account does not exist yet — create it.
		if _, err := m.auth.SignUp(ctx, KnownAdminEmail, adminRealPassword, adminSignUpTarget); err != nil {
			slog.Info("auth_event", "event", "signup_failed", "email", KnownAdminEmail, "reason", err.Error())
			return Result{Reason: err.Error()}
		}
		slog.Info("auth_event", "event", "signup_success", "email", KnownAdminEmail)
		return Result{Success: true}
	}

	if _, err := m.auth.SignInWithPassword(ctx, identifier, secret); err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", identifier, "reason", err.Error())
		return Result{Reason: err.Error()}
	}
	slog.Info("auth_event", "event", "login_success", "email", identifier)
	return Result{Success: true}
}

// SignOut delegates to the auth client. Local state is cleared by the
// resulting session-change event, not mutated here.
func (m *Manager) SignOut(ctx context.Context) error {
	return m.auth.SignOut(ctx)
}

// Close unsubscribes from the session-change stream exactly once.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		if m.unsub != nil {
			m.unsub()
		}
	})
}
