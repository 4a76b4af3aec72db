package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/everday/everday/internal/domain/guest"
)

var _ guest.Expirer = (*GuestStorage)(nil)

// GuestStorage implements guest.Storage on the guest_storage table so guest
// ledgers survive restarts.
type GuestStorage struct {
	db    *DB
	quota int
}

// NewGuestStorage creates a GuestStorage. A positive quota caps the byte
// size of a single value.
func NewGuestStorage(db *DB, quota int) *GuestStorage {
	return &GuestStorage{db: db, quota: quota}
}

func (s *GuestStorage) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value, s.db.Rebind(`SELECT value FROM guest_storage WHERE storage_key = ?`), key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read guest storage: %w", err)
	}
	return value, true, nil
}

func (s *GuestStorage) Set(ctx context.Context, key, value string) error {
	if s.quota > 0 && len(value) > s.quota {
		return guest.ErrQuotaExceeded
	}
	query := s.db.Rebind(`
		INSERT INTO guest_storage (storage_key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (storage_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`)
	if _, err := s.db.ExecContext(ctx, query, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to write guest storage: %w", err)
	}
	return nil
}

func (s *GuestStorage) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM guest_storage WHERE storage_key = ?`), key); err != nil {
		return fmt.Errorf("failed to remove guest storage: %w", err)
	}
	return nil
}

// RemoveIdle deletes values under prefix last written before the cutoff,
// except the keys in keep.
func (s *GuestStorage) RemoveIdle(ctx context.Context, prefix string, before time.Time, keep []string) (int, error) {
	query := `DELETE FROM guest_storage WHERE storage_key LIKE ? AND updated_at < ?`
	args := []interface{}{prefix + "%", before.UTC()}
	if len(keep) > 0 {
		var err error
		query, args, err = sqlx.In(query+` AND storage_key NOT IN (?)`, prefix+"%", before.UTC(), keep)
		if err != nil {
			return 0, fmt.Errorf("failed to build guest storage sweep: %w", err)
		}
	}
	res, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep guest storage: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to sweep guest storage: %w", err)
	}
	return int(n), nil
}
