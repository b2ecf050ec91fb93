package auth

import "context"

var authCtxKey = &contextKey{"auth"}

type contextKey struct {
	name string
}

// WithContext stores the authenticated context for the current request.
func WithContext(ctx context.Context, authCtx *AuthContext) context.Context {
	return context.WithValue(ctx, authCtxKey, authCtx)
}

// FromContext retrieves the authenticated context set by WithContext.
func FromContext(ctx context.Context) (*AuthContext, bool) {
	authCtx, ok := ctx.Value(authCtxKey).(*AuthContext)
	return authCtx, ok
}
