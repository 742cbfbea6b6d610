// Package repo provides the rotation cursor repository
package repo

import (
	"context"
	stdsql "database/sql"
	"errors"

	"faqrelay/internal/modkit/repokit"
)

// Repo is the rotation persistence surface used by the service layer
type Repo interface {
	Cursor(ctx context.Context, key string) (int, bool, error)
	SetCursor(ctx context.Context, key string, cursor int) error
}

type (
	// PG is a Postgres implementation of the rotation repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// Cursor returns the stored cursor; ok is false when no row exists yet
func (r *queries) Cursor(ctx context.Context, key string) (int, bool, error) {
	const sql = `SELECT cursor FROM rotation_cursor WHERE key = $1`

	var c int
	if err := r.q.QueryRow(ctx, sql, key).Scan(&c); err != nil {
		if errors.Is(err, stdsql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return c, true, nil
}

// SetCursor upserts the single cursor row for key
func (r *queries) SetCursor(ctx context.Context, key string, cursor int) error {
	const sql = `
		INSERT INTO rotation_cursor (key, cursor, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET cursor     = EXCLUDED.cursor,
		    updated_at = EXCLUDED.updated_at
	`
	_, err := r.q.Exec(ctx, sql, key, cursor)
	return err
}
