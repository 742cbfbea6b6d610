// Package service implements the reviewer rotation
package service

import (
	"context"

	"faqrelay/internal/modkit"
	"faqrelay/internal/modkit/repokit"
	perr "faqrelay/internal/platform/errors"

	rrepo "faqrelay/internal/services/rotation/repo"
)

// cursorKey names the single well known cursor row
const cursorKey = "reviewers"

// Svc implements the Selector port over a persisted cursor
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[rrepo.Repo]
	repo   rrepo.Repo
}

// New constructs the service
func New(deps modkit.Deps) *Svc {
	b := rrepo.NewPG()
	return &Svc{
		db:     deps.PG,
		binder: b,
		repo:   b.Bind(deps.PG),
	}
}

// SelectNext returns the next reviewer in list order.
// A single entry list returns it directly without touching the cursor.
// A missing or out of range cursor counts as -1 so the walk restarts at
// the head of the list
func (s *Svc) SelectNext(ctx context.Context, reviewers []string) (string, error) {
	n := len(reviewers)
	if n == 0 {
		return "", perr.InvalidArgf("reviewer list is empty")
	}
	if n == 1 {
		return reviewers[0], nil
	}

	cur, ok, err := s.repo.Cursor(ctx, cursorKey)
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeDB, "rotation cursor read")
	}
	if !ok || cur < 0 || cur >= n {
		cur = -1
	}

	next := (cur + 1) % n
	if err := s.repo.SetCursor(ctx, cursorKey, next); err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeDB, "rotation cursor write")
	}
	return reviewers[next], nil
}
