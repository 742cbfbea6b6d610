// Package repo provides the corpus repository implementation
package repo

import (
	"context"

	"faqrelay/internal/modkit/repokit"
	"faqrelay/internal/services/corpus/domain"
)

// Repo is the corpus persistence surface used by the service layer
type Repo interface {
	ListEnabled(ctx context.Context) ([]domain.Entry, error)
}

type (
	// PG is a Postgres implementation of the corpus repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// ListEnabled returns the enabled corpus in position order
// position ties break on id so the index order is stable across reloads
func (r *queries) ListEnabled(ctx context.Context) ([]domain.Entry, error) {
	const sql = `
		SELECT id, question, answer, position
		FROM corpus_entries
		WHERE enabled
		ORDER BY position, id
	`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Entry
	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(&e.ID, &e.Question, &e.Answer, &e.Position); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
