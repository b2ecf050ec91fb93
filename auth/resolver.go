package auth

import (
	"context"

	"github.com/Shikharishere/api/scopes"
	"github.com/Shikharishere/api/store"
	"github.com/Shikharishere/api/tokens"
)

// Options tune a single resolution. The zero value is the common case:
// access token expected, no required permissions, deactivated users
// rejected, client binding enforced, online bookkeeping on.
type Options struct {
	// OnlySessionToken switches the resolver to session-token mode: the
	// token is read exclusively from the session_token query parameter and
	// must be of the session kind.
	OnlySessionToken bool
	// RequiredPermissions, when non-empty, are enforced against the token
	// scope before any session store round-trip.
	RequiredPermissions scopes.Permissions
	// AllowDeactivated lets deactivated users authenticate.
	AllowDeactivated bool
	// AllowExternalClients skips the client-binding check. Tokens holding
	// the noexpire permission skip it regardless.
	AllowExternalClients bool
	// SkipOnlineUpdate disables the last-online bookkeeping write.
	SkipOnlineUpdate bool
}

// AuthContext is the result of a successful resolution. It is owned by the
// request that produced it and must not be cached across requests.
type AuthContext struct {
	Token       *tokens.Token
	Session     *store.UserSession
	Permissions scopes.Permissions
	User        *store.User
}

// Resolver runs the request-authentication pipeline. It is stateless
// across requests; all shared state lives behind the store interfaces.
type Resolver struct {
	cfg      Config
	sessions SessionStore
	users    UserStore
	clients  ClientChecker
	logger   Logger
}

// NewResolver wires a resolver with its store collaborators. The default
// client checker compares IP and user agent fingerprints.
func NewResolver(cfg Config, sessions SessionStore, users UserStore) *Resolver {
	return &Resolver{
		cfg:      cfg.withDefaults(),
		sessions: sessions,
		users:    users,
		clients:  &FingerprintChecker{},
		logger:   defLogger{},
	}
}

// WithLogger replaces the resolver logger.
func (r *Resolver) WithLogger(logger Logger) *Resolver {
	r.logger = logger
	return r
}

// WithClientChecker replaces the client-binding checker.
func (r *Resolver) WithClientChecker(checker ClientChecker) *Resolver {
	r.clients = checker
	return r
}

// ResolveRequest extracts a token from the request and resolves it.
func (r *Resolver) ResolveRequest(ctx context.Context, req Request, opts Options) (*AuthContext, error) {
	raw := ExtractToken(req, opts.OnlySessionToken)
	signal := SignalFromRequest(req)
	return r.ResolveToken(ctx, raw, &signal, opts)
}

// TryResolveRequest is the non-raising variant of ResolveRequest, for call
// sites that treat authentication as optional.
func (r *Resolver) TryResolveRequest(ctx context.Context, req Request, opts Options) (*AuthContext, bool) {
	authCtx, err := r.ResolveRequest(ctx, req, opts)
	if err != nil {
		return nil, false
	}
	return authCtx, true
}

// ResolveToken resolves a raw token string into an authenticated context.
// A nil signal skips the client-binding check (no transport fingerprint
// available).
func (r *Resolver) ResolveToken(ctx context.Context, raw string, signal *ClientSignal, opts Options) (*AuthContext, error) {
	if raw == "" {
		return nil, ErrAuthRequired
	}

	expect := tokens.KindAccess
	if opts.OnlySessionToken {
		expect = tokens.KindSession
	}

	// Phase one: parse the payload without a key to discover the session
	// that holds the signing secret.
	unsigned, err := tokens.DecodeUnsigned(raw, expect)
	if err != nil {
		return nil, err
	}
	if opts.OnlySessionToken && unsigned.Kind() != tokens.KindSession {
		return nil, r.integrityFailure("session-token mode decoded a %q token", unsigned.Kind())
	}

	// Scope gate runs before any store I/O so unauthorized callers fail
	// without a database round-trip. Session tokens carry no scope.
	scope := ""
	if expect == tokens.KindAccess {
		scope = unsigned.Scope()
	}
	held := scopes.ParseScope(scope)
	if len(opts.RequiredPermissions) > 0 {
		if err := scopes.Require(opts.RequiredPermissions, held); err != nil {
			return nil, err
		}
	}

	allowExternal := opts.AllowExternalClients || held.Has(scopes.PermissionNoExpire)
	session, err := r.resolveSession(ctx, unsigned.SessionID(), signal, allowExternal)
	if err != nil {
		return nil, err
	}

	// Phase two: re-decode keyed by the session secret.
	signed, err := tokens.Decode(raw, expect, []byte(session.TokenSecret))
	if err != nil {
		return nil, err
	}
	if !signed.SignatureIsValid() {
		return nil, ErrInvalidSignature
	}

	user, err := r.users.GetByID(ctx, signed.UserID())
	if err != nil {
		return nil, err
	}
	if user == nil || session.OwnerID != user.ID {
		return nil, r.integrityFailure("token subject %d does not resolve to the session owner %d", signed.UserID(), session.OwnerID)
	}

	if !user.IsActive && !opts.AllowDeactivated {
		return nil, ErrUserDeactivated
	}

	if !opts.SkipOnlineUpdate {
		if err := r.users.TrackOnline(ctx, user); err != nil {
			// Bookkeeping only; authentication already succeeded.
			r.logger.Warn("failed to update online time for user %d: %s", user.ID, err)
		}
	}

	return &AuthContext{
		Token:       signed,
		Session:     session,
		Permissions: held,
		User:        user,
	}, nil
}

func (r *Resolver) resolveSession(ctx context.Context, sessionID int64, signal *ClientSignal, allowExternal bool) (*store.UserSession, error) {
	if sessionID <= 0 {
		return nil, r.integrityFailure("token carries no session id")
	}

	session, err := r.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		// Sessions are never deleted, so a dangling reference means a
		// forged token or a storage inconsistency.
		return nil, r.integrityFailure("token references vanished session %d", sessionID)
	}

	if !session.IsActive {
		return nil, ErrSessionClosed
	}

	if !allowExternal && signal != nil {
		if err := r.clients.Check(ctx, session, *signal); err != nil {
			return nil, err
		}
	}

	return session, nil
}

func (r *Resolver) integrityFailure(format string, args ...any) error {
	r.logger.Error("integrity check failed: "+format, args...)
	return ErrIntegrityFailure
}
