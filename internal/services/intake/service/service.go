// Package service implements the intake pipeline
package service

import (
	"time"

	"faqrelay/internal/modkit"
	"faqrelay/internal/platform/keylock"
	"faqrelay/internal/platform/logger"
	"faqrelay/internal/platform/store"

	corpusdom "faqrelay/internal/services/corpus/domain"
	decdom "faqrelay/internal/services/decisionlog/domain"
	dom "faqrelay/internal/services/intake/domain"
	revdom "faqrelay/internal/services/review/domain"
	rotdom "faqrelay/internal/services/rotation/domain"
)

// Config controls the pipeline policy
type Config struct {
	ReviewMode bool
	Reviewers  []string
	Dedup      bool
	DedupTTL   time.Duration
}

// Ports are the collaborator seams the pipeline drives
type Ports struct {
	Corpus    corpusdom.Provider
	Generator dom.Generator
	Notifier  dom.Notifier
	Directory dom.Directory
	Selector  rotdom.Selector
	Reviews   revdom.Creator
	Decisions decdom.Recorder
}

// Svc runs the intake pipeline. One message is handled at a time per
// room; unrelated rooms proceed concurrently
type Svc struct {
	p   Ports
	kv  store.KV
	cfg Config
	log logger.Logger

	locks *keylock.KeyLock
}

// New constructs the service
func New(deps modkit.Deps, cfg Config, p Ports) *Svc {
	if cfg.DedupTTL <= 0 {
		cfg.DedupTTL = 10 * time.Minute
	}
	return &Svc{
		p:     p,
		kv:    deps.KV,
		cfg:   cfg,
		log:   *logger.Named("intake"),
		locks: keylock.New(),
	}
}
