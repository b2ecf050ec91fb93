// Package auth resolves request credentials into an authenticated context:
// it extracts a token, decodes it in two phases, binds it to a live
// session and user through the store collaborators, and enforces scope,
// client-binding, and activation policy.
package auth

import (
	"context"
	"fmt"

	"github.com/Shikharishere/api/store"
)

// Logger is the minimal logging surface the resolver needs.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// SessionStore looks up and mutates login sessions.
type SessionStore interface {
	GetByID(ctx context.Context, id int64) (*store.UserSession, error)
	GetLast(ctx context.Context, ownerID int64) (*store.UserSession, error)
	Deactivate(ctx context.Context, session *store.UserSession) error
	Count(ctx context.Context) (int, error)
	CountActive(ctx context.Context) (int, error)
}

// UserStore looks up and mutates user records.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*store.User, error)
	GetByUsername(ctx context.Context, username string) (*store.User, error)
	EmailIsTaken(ctx context.Context, email string) (bool, error)
	UsernameIsTaken(ctx context.Context, username string) (bool, error)
	EmailConfirm(ctx context.Context, user *store.User) error
	TrackOnline(ctx context.Context, user *store.User) error
	Count(ctx context.Context) (int, error)
}

// PasswordHasher hashes and checks passwords. The algorithm is opaque to
// this package.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(password, hash string) error
}

// ClientChecker compares a request's client signal against the device
// fingerprint recorded on the session.
type ClientChecker interface {
	Check(ctx context.Context, session *store.UserSession, signal ClientSignal) error
}

// RateLimiter guards sensitive operations keyed by request identity.
// Implementations fail with a too-many-requests error carrying a
// retry-after duration.
type RateLimiter interface {
	Check(ctx context.Context, key string) error
}

type defLogger struct{}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
