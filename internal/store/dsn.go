package store

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/lib/pq"
)

var (
	// ErrInvalidDSN indicates a connection string lib/pq cannot parse.
	ErrInvalidDSN = errors.New("invalid postgres connection string")
	// ErrEmbeddedPassword indicates a connection string carrying a password.
	ErrEmbeddedPassword = errors.New("connection string must not contain a password")
)

func isPostgresURL(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// ValidatePostgresDSN checks a URL or key=value DSN and rejects embedded
// passwords. Passwords belong in .pgpass or PGPASSWORD.
func ValidatePostgresDSN(dsn string) error {
	if strings.TrimSpace(dsn) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidDSN)
	}
	if _, err := pq.NewConnector(dsn); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDSN, err)
	}

	if isPostgresURL(dsn) {
		u, err := url.Parse(dsn)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidDSN, err)
		}
		if _, set := u.User.Password(); set {
			return ErrEmbeddedPassword
		}
		return nil
	}
	for _, pair := range strings.Fields(dsn) {
		key, _, ok := strings.Cut(pair, "=")
		if ok && strings.EqualFold(strings.TrimSpace(key), "password") {
			return ErrEmbeddedPassword
		}
	}
	return nil
}

// MaskDSN hides the password of a DSN for display.
func MaskDSN(dsn string) string {
	if isPostgresURL(dsn) {
		u, err := url.Parse(dsn)
		if err != nil {
			return "****"
		}
		if _, set := u.User.Password(); set {
			u.User = url.UserPassword(u.User.Username(), "****")
		}
		return u.String()
	}
	parts := strings.Fields(dsn)
	for i, part := range parts {
		if key, _, ok := strings.Cut(part, "="); ok && strings.EqualFold(key, "password") {
			parts[i] = key + "=****"
		}
	}
	return strings.Join(parts, " ")
}
