// Package service implements the review lifecycle
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"faqrelay/internal/modkit"
	"faqrelay/internal/modkit/repokit"
	perr "faqrelay/internal/platform/errors"
	"faqrelay/internal/platform/logger"

	dom "faqrelay/internal/services/review/domain"
	rrepo "faqrelay/internal/services/review/repo"
)

// Service bundles every review port
type Service interface {
	dom.Creator
	dom.Reader
	dom.Actions
	dom.Sweeper
}

const (
	defaultListLimit = 50
	maxListLimit     = 200
	defaultSweepLim  = 500
)

// Svc implements the review lifecycle over the Postgres repo
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[rrepo.Repo]
	repo   rrepo.Repo

	notify dom.Notifier
	log    logger.Logger
	now    func() time.Time
	newID  func() string
}

// New constructs the service. notify may be nil in processes that never
// deliver (the sweeper); delivering actions then report a delivery error
func New(deps modkit.Deps, notify dom.Notifier) *Svc {
	b := rrepo.NewPG()
	return &Svc{
		db:     deps.PG,
		binder: b,
		repo:   b.Bind(deps.PG),
		notify: notify,
		log:    *logger.Named("review"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Create records a freshly escalated review in pending state
func (s *Svc) Create(ctx context.Context, n dom.NewReview) (dom.Review, error) {
	now := s.now().UTC()
	rv := dom.Review{
		ID:               s.newID(),
		SourceMessageID:  n.SourceMessageID,
		RoomID:           n.RoomID,
		RoomName:         n.RoomName,
		SenderID:         n.SenderID,
		SenderUsername:   n.SenderUsername,
		OriginalMessage:  n.OriginalMessage,
		DetectedQuestion: n.DetectedQuestion,
		ProposedAnswer:   n.ProposedAnswer,
		AssignedTo:       n.AssignedTo,
		Status:           dom.StatusPending,
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.Insert(ctx, rv); err != nil {
		return dom.Review{}, perr.Wrap(err, perr.ErrorCodeDB, "review insert")
	}
	return rv, nil
}

// Get returns one review by id
func (s *Svc) Get(ctx context.Context, id string) (dom.Review, error) {
	rv, ok, err := s.repo.Get(ctx, id)
	if err != nil {
		return dom.Review{}, perr.Wrap(err, perr.ErrorCodeDB, "review read")
	}
	if !ok {
		return dom.Review{}, perr.NotFoundf("review %s not found", id)
	}
	return rv, nil
}

// List pages reviews newest first
func (s *Svc) List(ctx context.Context, q dom.ListQuery) ([]dom.Review, error) {
	if q.Status != "" && !dom.ValidStatus(q.Status) {
		return nil, perr.InvalidArgf("unknown status %q", q.Status)
	}
	limit := q.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	out, err := s.repo.List(ctx, string(q.Status), limit, q.After)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "review list")
	}
	return out, nil
}

// ExpirePending sweeps pending reviews older than the window into the
// expired state. Expiry never delivers anything
func (s *Svc) ExpirePending(ctx context.Context, olderThan time.Duration, limit int) (int, error) {
	if olderThan <= 0 {
		return 0, perr.InvalidArgf("expiry window must be positive")
	}
	if limit <= 0 {
		limit = defaultSweepLim
	}

	cutoff := s.now().UTC().Add(-olderThan)
	ids, err := s.repo.ExpireOlderThan(ctx, cutoff, limit)
	if err != nil {
		return 0, perr.Wrap(err, perr.ErrorCodeDB, "review expiry sweep")
	}
	if len(ids) > 0 {
		s.log.Info().Int("expired", len(ids)).Strs("review_ids", ids).Msg("stale pending reviews expired")
	}
	return len(ids), nil
}
