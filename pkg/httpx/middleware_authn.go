package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/likestem/authd/pkg/jwtx"
	"github.com/likestem/authd/pkg/slogx"
)

// AuthnMiddleware verifies the Bearer token on the request and injects the
// subject and username into the request context. Requests without a valid
// token get a 401 with the standard error envelope.
func AuthnMiddleware(verifier jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				WriteError(w, http.StatusUnauthorized, "invalid_token", "Missing bearer token")
				return
			}

			claims, err := verifier.Verify(strings.TrimSpace(token))
			if err != nil {
				log.Warn("token verification failed", "err", err)
				WriteError(w, http.StatusUnauthorized, "invalid_token", "Invalid or expired access token")
				return
			}

			ctx = context.WithValue(ctx, CtxKeyUserID, claims.Subject)
			ctx = context.WithValue(ctx, CtxKeyUsername, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
