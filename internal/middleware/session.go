package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vangoframework/pellines/internal/auth"
)

type contextKey string

// SessionContextKey is the context key for the session.
const SessionContextKey contextKey = "session"

// Session returns a middleware that loads the session into the request context.
// A valid session also makes its identity available to auth.ContextAuthenticator.
func Session(store *auth.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r)
			if err == nil && session != nil {
				ctx := context.WithValue(r.Context(), SessionContextKey, session)
				ctx = auth.WithIdentity(ctx, session.Identity())
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetSession retrieves the session from context.
func GetSession(ctx context.Context) *auth.SessionData {
	session, ok := ctx.Value(SessionContextKey).(*auth.SessionData)
	if !ok {
		return nil
	}
	return session
}

// TokenVerifier validates provider tokens.
type TokenVerifier interface {
	Verify(token string) (*auth.Identity, error)
}

// Identity authenticates requests that carry a provider token instead of a
// session cookie. Requests that already have an identity pass through untouched,
// and an invalid token leaves the request anonymous.
func Identity(verifier TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if auth.IdentityFromContext(r.Context()) != nil {
				next.ServeHTTP(w, r)
				return
			}

			token, err := auth.TokenFromRequest(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := verifier.Verify(token)
			if err != nil {
				if !errors.Is(err, auth.ErrMissingToken) {
					logger.Debug("rejected provider token", "path", r.URL.Path, "error", err)
				}
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
		})
	}
}
