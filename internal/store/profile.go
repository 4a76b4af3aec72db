package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/everday/everday/internal/domain/account"
	"github.com/everday/everday/internal/repository"
)

const profileColumns = `id, email, username, full_name, plan, is_premium, plan_expires_at, created_at, updated_at`

// ProfileRepository implements account.Repository.
type ProfileRepository struct {
	db *DB
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Get(ctx context.Context, id string) (*account.Profile, error) {
	var p account.Profile
	query := r.db.Rebind(`SELECT ` + profileColumns + ` FROM profiles WHERE id = ?`)
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

func (r *ProfileRepository) Create(ctx context.Context, p *account.Profile) error {
	query := r.db.Rebind(`INSERT INTO profiles (` + profileColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Email, p.Username, p.FullName, p.Plan, p.IsPremium, utcPtr(p.PlanExpiresAt),
		p.CreatedAt.UTC(), p.UpdatedAt.UTC(),
	)
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// CreateWithKey inserts the profile and its first API key in one transaction.
func (r *ProfileRepository) CreateWithKey(ctx context.Context, p *account.Profile, keyHash string) error {
	return r.db.inTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO profiles (`+profileColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
			p.ID, p.Email, p.Username, p.FullName, p.Plan, p.IsPremium, utcPtr(p.PlanExpiresAt),
			p.CreatedAt.UTC(), p.UpdatedAt.UTC(),
		)
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		if err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}
		_, err = tx.ExecContext(ctx, tx.Rebind(`INSERT INTO api_keys (key_hash, account_id, created_at) VALUES (?, ?, ?)`),
			keyHash, p.ID, p.CreatedAt.UTC(),
		)
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		if err != nil {
			return fmt.Errorf("failed to create api key: %w", err)
		}
		return nil
	})
}

func (r *ProfileRepository) Update(ctx context.Context, p *account.Profile) error {
	query := r.db.Rebind(`
		UPDATE profiles SET
			email = ?, username = ?, full_name = ?, plan = ?, is_premium = ?, plan_expires_at = ?, updated_at = ?
		WHERE id = ?
	`)
	res, err := r.db.ExecContext(ctx, query,
		p.Email, p.Username, p.FullName, p.Plan, p.IsPremium, utcPtr(p.PlanExpiresAt), p.UpdatedAt.UTC(),
		p.ID,
	)
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return affected(res)
}

// APIKeyRepository implements account.KeyRepository over hashed tokens.
type APIKeyRepository struct {
	db *DB
}

// NewAPIKeyRepository creates a new APIKeyRepository
func NewAPIKeyRepository(db *DB) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

func (r *APIKeyRepository) CreateKey(ctx context.Context, accountID, keyHash string) error {
	query := r.db.Rebind(`INSERT INTO api_keys (key_hash, account_id, created_at) VALUES (?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query, keyHash, accountID, time.Now().UTC())
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create api key: %w", err)
	}
	return nil
}

// ResolveKey returns the account of a key hash and stamps its last use.
func (r *APIKeyRepository) ResolveKey(ctx context.Context, keyHash string) (string, error) {
	var accountID string
	if err := r.db.GetContext(ctx, &accountID, r.db.Rebind(`SELECT account_id FROM api_keys WHERE key_hash = ?`), keyHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", repository.ErrNotFound
		}
		return "", fmt.Errorf("failed to resolve api key: %w", err)
	}
	_, _ = r.db.ExecContext(ctx, r.db.Rebind(`UPDATE api_keys SET last_used = ? WHERE key_hash = ?`), time.Now().UTC(), keyHash)
	return accountID, nil
}
