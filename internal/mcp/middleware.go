package mcp

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type contextKey int

const accountIDKey contextKey = iota

// getAccountID extracts the account ID from context.
func getAccountID(ctx context.Context) string {
	v, _ := ctx.Value(accountIDKey).(string)
	return v
}

// AccountResolver resolves an account ID from a bearer token.
type AccountResolver interface {
	ResolveAccount(ctx context.Context, token string) (string, error)
}

// authMiddleware implements bearer token authentication as MCP middleware.
func authMiddleware(resolver AccountResolver) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			// Protocol methods carry no account.
			if method == "initialize" || method == "ping" || strings.HasPrefix(method, "notifications/") {
				return next(ctx, method, req)
			}

			extra := req.GetExtra()
			if extra == nil || extra.Header == nil {
				return nil, fmt.Errorf("%w: missing headers", ErrUnauthorized)
			}

			auth := extra.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if token == "" {
				return nil, fmt.Errorf("%w: missing bearer token", ErrUnauthorized)
			}

			accountID, err := resolver.ResolveAccount(ctx, token)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
			}
			if accountID == "" {
				return nil, fmt.Errorf("%w: invalid bearer token", ErrUnauthorized)
			}

			ctx = context.WithValue(ctx, accountIDKey, accountID)
			return next(ctx, method, req)
		}
	}
}

// noAuthMiddleware injects a fixed account when auth is disabled.
func noAuthMiddleware(defaultAccount string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if defaultAccount != "" {
				ctx = context.WithValue(ctx, accountIDKey, defaultAccount)
			}
			return next(ctx, method, req)
		}
	}
}
