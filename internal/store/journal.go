package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/everday/everday/internal/domain/journal"
	"github.com/everday/everday/internal/repository"
)

const journalColumns = `id, user_id, entry_date, thoughts, good_things, bad_things, lessons, dreams, mood, created_at, updated_at`

// JournalRepository implements journal.Repository. Entries are unique per date.
type JournalRepository struct {
	db *DB
}

// NewJournalRepository creates a new JournalRepository
func NewJournalRepository(db *DB) *JournalRepository {
	return &JournalRepository{db: db}
}

func (r *JournalRepository) GetByDate(ctx context.Context, ownerID, date string) (*journal.Entry, error) {
	var e journal.Entry
	query := r.db.Rebind(`SELECT ` + journalColumns + ` FROM journal_entries WHERE user_id = ? AND entry_date = ?`)
	if err := r.db.GetContext(ctx, &e, query, ownerID, date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get journal entry: %w", err)
	}
	return &e, nil
}

func (r *JournalRepository) Create(ctx context.Context, ownerID string, e *journal.Entry) error {
	e.OwnerID = ownerID
	query := r.db.Rebind(`INSERT INTO journal_entries (` + journalColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query, journalArgs(ownerID, *e)...)
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create journal entry: %w", err)
	}
	return nil
}

func (r *JournalRepository) Update(ctx context.Context, ownerID string, e *journal.Entry) error {
	query := r.db.Rebind(`
		UPDATE journal_entries SET
			thoughts = ?, good_things = ?, bad_things = ?, lessons = ?, dreams = ?, mood = ?, updated_at = ?
		WHERE user_id = ? AND entry_date = ?
	`)
	res, err := r.db.ExecContext(ctx, query,
		e.Thoughts, e.GoodThings, e.BadThings, e.Lessons, e.Dreams, e.Mood, e.UpdatedAt.UTC(),
		ownerID, e.EntryDate,
	)
	if err != nil {
		return fmt.Errorf("failed to update journal entry: %w", err)
	}
	return affected(res)
}

func (r *JournalRepository) DeleteByDate(ctx context.Context, ownerID, date string) error {
	query := r.db.Rebind(`DELETE FROM journal_entries WHERE user_id = ? AND entry_date = ?`)
	res, err := r.db.ExecContext(ctx, query, ownerID, date)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}
	return affected(res)
}

// ListRange returns entries with from <= date <= to ordered by date. Empty
// bounds are open.
func (r *JournalRepository) ListRange(ctx context.Context, ownerID, from, to string) ([]journal.Entry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE user_id = ?`
	args := []interface{}{ownerID}
	if from != "" {
		query += " AND entry_date >= ?"
		args = append(args, from)
	}
	if to != "" {
		query += " AND entry_date <= ?"
		args = append(args, to)
	}
	query += " ORDER BY entry_date ASC"

	entries := []journal.Entry{}
	if err := r.db.SelectContext(ctx, &entries, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return entries, nil
}

func journalArgs(ownerID string, e journal.Entry) []interface{} {
	return []interface{}{
		e.ID, ownerID, e.EntryDate, e.Thoughts, e.GoodThings, e.BadThings, e.Lessons, e.Dreams,
		e.Mood, e.CreatedAt.UTC(), e.UpdatedAt.UTC(),
	}
}

// upsertJournalEntries keys on the entry date, so a guest entry for a day the
// account already journaled overwrites that day's text.
func upsertJournalEntries(ctx context.Context, ext sqlx.ExtContext, ownerID string, entries []journal.Entry) error {
	query := ext.Rebind(`
		INSERT INTO journal_entries (` + journalColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, entry_date) DO UPDATE SET
			thoughts = excluded.thoughts,
			good_things = excluded.good_things,
			bad_things = excluded.bad_things,
			lessons = excluded.lessons,
			dreams = excluded.dreams,
			mood = excluded.mood,
			updated_at = excluded.updated_at
	`)
	for _, e := range entries {
		if _, err := ext.ExecContext(ctx, query, journalArgs(ownerID, e)...); err != nil {
			return fmt.Errorf("upserting journal entry %s: %w", e.EntryDate, err)
		}
	}
	return nil
}
