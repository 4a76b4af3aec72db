package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/everday/everday/internal/domain/guest"
)

type testResolver struct {
	tokenToAccount map[string]string
	err            error
}

func (r *testResolver) ResolveAccount(_ context.Context, token string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	account, ok := r.tokenToAccount[token]
	if !ok {
		return "", ErrUnauthorized
	}
	return account, nil
}

func TestAuthMiddleware(t *testing.T) {
	resolver := &testResolver{tokenToAccount: map[string]string{"token": "acct1"}}

	handler := AuthMiddleware(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := AccountFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, "acct1", accountID)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_Invalid(t *testing.T) {
	resolver := &testResolver{err: errors.New("invalid")}

	handler := AuthMiddleware(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer nope")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "unauthorized", body["error"].Code)
}

func TestAuthMiddleware_NoTokenPassesThrough(t *testing.T) {
	resolver := &testResolver{err: errors.New("must not be called")}

	called := false
	handler := AuthMiddleware(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, ok := AccountFromContext(r.Context())
		require.False(t, ok)
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestStaticAccount(t *testing.T) {
	handler := StaticAccount("solo")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := AccountFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, "solo", accountID)
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGuestMiddleware(t *testing.T) {
	registry := guest.NewRegistry(guest.NewMemoryStorage(0), nil)
	sess := registry.Create(context.Background())

	handler := GuestMiddleware(registry)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := GuestFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, sess.ID, got.ID)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(GuestHeader, sess.ID)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGuestMiddleware_UnknownSession(t *testing.T) {
	registry := guest.NewRegistry(guest.NewMemoryStorage(0), nil)

	handler := GuestMiddleware(registry)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(GuestHeader, "missing")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
