// Package httpx carries the small HTTP plumbing shared by handlers:
// response helpers, middleware chaining, bearer-token authentication and
// per-key rate limiting.
package httpx

import "net/http"

// Middleware wraps an http.Handler with extra behaviour.
type Middleware func(http.Handler) http.Handler

// Chain applies middlewares around h so that the first middleware listed is
// the outermost one.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

type contextKey string

// Context keys populated by AuthnMiddleware.
const (
	CtxKeyUserID   contextKey = "user_id"
	CtxKeyUsername contextKey = "username"
)
