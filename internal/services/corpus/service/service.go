// Package service implements the corpus provider
package service

import (
	"context"
	"sync/atomic"

	"faqrelay/internal/core/classify"
	"faqrelay/internal/modkit"
	"faqrelay/internal/modkit/repokit"
	perr "faqrelay/internal/platform/errors"
	"faqrelay/internal/platform/logger"

	crepo "faqrelay/internal/services/corpus/repo"
)

// Config carries the classifier policy knobs
type Config struct {
	Threshold      float64
	MinThreshold   float64
	MinLength      int
	QuestionFilter bool
}

// Svc loads corpus rows and publishes an immutable classifier.
// Reload builds the full index before the swap so searches in flight
// never observe a half built one
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[crepo.Repo]
	repo   crepo.Repo

	cfg Config
	log logger.Logger
	cur atomic.Pointer[classify.Classifier]
}

// New constructs the service. An empty index is published immediately so
// Snapshot callers never see nil before the first Reload
func New(deps modkit.Deps, cfg Config) *Svc {
	b := crepo.NewPG()
	s := &Svc{
		db:     deps.PG,
		binder: b,
		repo:   b.Bind(deps.PG),
		cfg:    cfg,
		log:    *logger.Named("corpus"),
	}
	s.cur.Store(classify.New(nil, s.classifyOpts()))
	return s
}

func (s *Svc) classifyOpts() classify.Options {
	return classify.Options{
		Threshold:      s.cfg.Threshold,
		MinThreshold:   s.cfg.MinThreshold,
		MinLength:      s.cfg.MinLength,
		QuestionFilter: s.cfg.QuestionFilter,
	}
}

// Snapshot returns the current classifier
func (s *Svc) Snapshot() *classify.Classifier { return s.cur.Load() }

// Reload reads the enabled corpus and swaps in a fresh index
func (s *Svc) Reload(ctx context.Context) (classify.Stats, error) {
	rows, err := s.repo.ListEnabled(ctx)
	if err != nil {
		return classify.Stats{}, perr.Wrap(err, perr.ErrorCodeDB, "corpus load")
	}

	entries := make([]classify.Entry, len(rows))
	for i, r := range rows {
		entries[i] = classify.Entry{Question: r.Question, Answer: r.Answer}
	}

	next := classify.New(entries, s.classifyOpts())
	s.cur.Store(next)

	st := next.Stats()
	s.log.Info().
		Int("corpus_size", st.CorpusSize).
		Float64("threshold", st.Threshold).
		Msg("classifier swapped")
	return st, nil
}
