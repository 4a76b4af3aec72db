package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/everday/everday/internal/domain/sourcedump"
	"github.com/everday/everday/internal/repository"
)

const dumpColumns = `id, user_id, title, links, text_content, screenshots, background_color, created_at, updated_at`

// dumpRow is the stored shape of a dump; screenshots are a JSON array.
type dumpRow struct {
	ID              string    `db:"id"`
	OwnerID         string    `db:"user_id"`
	Title           string    `db:"title"`
	Links           string    `db:"links"`
	TextContent     string    `db:"text_content"`
	Screenshots     string    `db:"screenshots"`
	BackgroundColor *string   `db:"background_color"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (r dumpRow) dump() (sourcedump.Dump, error) {
	d := sourcedump.Dump{
		ID:              r.ID,
		OwnerID:         r.OwnerID,
		Title:           r.Title,
		Links:           r.Links,
		TextContent:     r.TextContent,
		Screenshots:     []string{},
		BackgroundColor: r.BackgroundColor,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if r.Screenshots != "" {
		if err := json.Unmarshal([]byte(r.Screenshots), &d.Screenshots); err != nil {
			return sourcedump.Dump{}, fmt.Errorf("unmarshaling screenshots of %s: %w", r.ID, err)
		}
	}
	return d, nil
}

func encodeScreenshots(shots []string) (string, error) {
	if shots == nil {
		shots = []string{}
	}
	encoded, err := json.Marshal(shots)
	if err != nil {
		return "", fmt.Errorf("marshaling screenshots: %w", err)
	}
	return string(encoded), nil
}

func dumpArgs(ownerID string, d sourcedump.Dump) ([]interface{}, error) {
	shots, err := encodeScreenshots(d.Screenshots)
	if err != nil {
		return nil, err
	}
	return []interface{}{
		d.ID, ownerID, d.Title, d.Links, d.TextContent, shots,
		d.BackgroundColor, d.CreatedAt.UTC(), d.UpdatedAt.UTC(),
	}, nil
}

// SourceDumpRepository implements sourcedump.Repository.
type SourceDumpRepository struct {
	db *DB
}

// NewSourceDumpRepository creates a new SourceDumpRepository
func NewSourceDumpRepository(db *DB) *SourceDumpRepository {
	return &SourceDumpRepository{db: db}
}

func (r *SourceDumpRepository) Create(ctx context.Context, ownerID string, d *sourcedump.Dump) error {
	d.OwnerID = ownerID
	args, err := dumpArgs(ownerID, *d)
	if err != nil {
		return err
	}
	query := r.db.Rebind(`INSERT INTO source_dumps (` + dumpColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err = r.db.ExecContext(ctx, query, args...)
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create source dump: %w", err)
	}
	return nil
}

func (r *SourceDumpRepository) Get(ctx context.Context, ownerID, id string) (*sourcedump.Dump, error) {
	var row dumpRow
	query := r.db.Rebind(`SELECT ` + dumpColumns + ` FROM source_dumps WHERE id = ? AND user_id = ?`)
	if err := r.db.GetContext(ctx, &row, query, id, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get source dump: %w", err)
	}
	d, err := row.dump()
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *SourceDumpRepository) Update(ctx context.Context, ownerID string, d *sourcedump.Dump) error {
	shots, err := encodeScreenshots(d.Screenshots)
	if err != nil {
		return err
	}
	query := r.db.Rebind(`
		UPDATE source_dumps SET
			title = ?, links = ?, text_content = ?, screenshots = ?, background_color = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`)
	res, err := r.db.ExecContext(ctx, query,
		d.Title, d.Links, d.TextContent, shots, d.BackgroundColor, d.UpdatedAt.UTC(),
		d.ID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update source dump: %w", err)
	}
	return affected(res)
}

func (r *SourceDumpRepository) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM source_dumps WHERE id = ? AND user_id = ?`), id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete source dump: %w", err)
	}
	return affected(res)
}

// List returns dumps newest first.
func (r *SourceDumpRepository) List(ctx context.Context, ownerID string) ([]sourcedump.Dump, error) {
	var rows []dumpRow
	query := r.db.Rebind(`SELECT ` + dumpColumns + ` FROM source_dumps WHERE user_id = ? ORDER BY created_at DESC, id`)
	if err := r.db.SelectContext(ctx, &rows, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list source dumps: %w", err)
	}

	dumps := make([]sourcedump.Dump, 0, len(rows))
	for _, row := range rows {
		d, err := row.dump()
		if err != nil {
			return nil, err
		}
		dumps = append(dumps, d)
	}
	return dumps, nil
}

func (r *SourceDumpRepository) Count(ctx context.Context, ownerID string) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM source_dumps WHERE user_id = ?`), ownerID); err != nil {
		return 0, fmt.Errorf("failed to count source dumps: %w", err)
	}
	return n, nil
}

func upsertSourceDumps(ctx context.Context, ext sqlx.ExtContext, ownerID string, dumps []sourcedump.Dump) error {
	query := ext.Rebind(`
		INSERT INTO source_dumps (` + dumpColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			links = excluded.links,
			text_content = excluded.text_content,
			screenshots = excluded.screenshots,
			background_color = excluded.background_color,
			updated_at = excluded.updated_at
		WHERE source_dumps.user_id = excluded.user_id
	`)
	for _, d := range dumps {
		args, err := dumpArgs(ownerID, d)
		if err != nil {
			return err
		}
		if _, err := ext.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upserting source dump %s: %w", d.ID, err)
		}
	}
	return nil
}
