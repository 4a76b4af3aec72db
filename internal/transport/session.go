package transport

import (
	"context"
	"net/http"

	"github.com/everday/everday/internal/domain/guest"
)

// GuestHeader carries the guest session id.
const GuestHeader = "X-Guest-Session"

type guestKey struct{}

// GuestOpener opens guest sessions by id.
type GuestOpener interface {
	Open(ctx context.Context, id string) (*guest.Session, error)
}

// GuestFromContext returns the guest session from context, if present.
func GuestFromContext(ctx context.Context) (*guest.Session, bool) {
	sess, ok := ctx.Value(guestKey{}).(*guest.Session)
	return sess, ok && sess != nil
}

// GuestMiddleware opens the session named by X-Guest-Session and stores it in
// context. An unknown session id is rejected.
func GuestMiddleware(guests GuestOpener) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(GuestHeader)
			if id == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := guests.Open(r.Context(), id)
			if err != nil {
				apiErr := MapError(err)
				writeJSON(w, apiErr.Status, map[string]*APIError{"error": apiErr})
				return
			}

			ctx := context.WithValue(r.Context(), guestKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
