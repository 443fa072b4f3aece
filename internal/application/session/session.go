package session

import (
	"context"
	"errors"
)

// KnownAdminEmail is the single identity granted dashboard access.
//
// Privilege is client-derivable email equality with no server-side role
// lookup behind it: any identity that can authenticate as this exact email is
// treated as fully privileged. That authorization gap is inherited from the
// original system and kept behind IsPrivileged so call sites never embed the
// comparison and a real role check can replace it later.
const KnownAdminEmail = "rajshekharan2020@gmail.com"

// Admin login alias: entering these exact credentials on the login form
// signs in (or first creates) the real admin identity.
const (
	adminAlias        = "admin"
	adminAliasSecret  = "admin"
	adminRealPassword = "admin123"
	adminSignUpTarget = "/admin"
)

// ErrInvalidCredentials is the sentinel an AuthClient must return when an
// email/password pair does not match. The sign-up fallback for the admin
// alias keys off this exact cause.
var ErrInvalidCredentials = errors.New("invalid login credentials")

// Identity is one authenticated identity as reported by the auth client.
type Identity struct {
	ID        string
	Email     string
	Confirmed bool
}

// IsPrivileged is the single authorization policy function. Exact,
// case-sensitive email equality; no store lookup.
// INVARIANT: pure — no I/O, no mutation
func IsPrivileged(id *Identity) bool {
	return id != nil && id.Email == KnownAdminEmail
}

// AuthClient is the auth surface of the remote store. Implementations must
// deliver a session-change event for every sign-in and sign-out so that
// subscriber state converges on the event stream as the single source of
// truth.
type AuthClient interface {
	SignInWithPassword(ctx context.Context, email, password string) (Identity, error)
	SignUp(ctx context.Context, email, password, redirectTo string) (Identity, error)
	SignOut(ctx context.Context) error
	GetSession(ctx context.Context) (Identity, bool, error)
	// OnSessionChange registers a callback invoked with the new identity
	// (nil on sign-out) and returns an unsubscribe function.
	OnSessionChange(fn func(id *Identity)) (unsubscribe func())
}

// Result carries the outcome of a sign-in attempt. SignIn never returns an
// error; failures are reported through Reason for direct display.
type Result struct {
	Success bool
	Reason  string
}
