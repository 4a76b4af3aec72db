package transport

import (
	"context"
	"net/http"
	"strings"
)

type accountKey struct{}

// AccountResolver resolves an account ID from a bearer token.
type AccountResolver interface {
	ResolveAccount(ctx context.Context, token string) (string, error)
}

// AccountFromContext returns the account ID from context, if present.
func AccountFromContext(ctx context.Context) (string, bool) {
	accountID, ok := ctx.Value(accountKey{}).(string)
	return accountID, ok && accountID != ""
}

// WithAccount stores an account ID in ctx.
func WithAccount(ctx context.Context, accountID string) context.Context {
	return context.WithValue(ctx, accountKey{}, accountID)
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
}

// AuthMiddleware resolves an optional bearer token. Requests without a token
// pass through anonymously; requests with an unknown token are rejected.
func AuthMiddleware(resolver AccountResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			accountID, err := resolver.ResolveAccount(r.Context(), token)
			if err != nil || accountID == "" {
				writeJSON(w, http.StatusUnauthorized, map[string]*APIError{"error": {
					Status: http.StatusUnauthorized, Code: "unauthorized", Message: "invalid bearer token",
				}})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAccount(r.Context(), accountID)))
		})
	}
}

// StaticAccount attaches one account to every request. Used when
// authentication is disabled for single-user deployments.
func StaticAccount(accountID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithAccount(r.Context(), accountID)))
		})
	}
}
