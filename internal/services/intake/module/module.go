// Package module wires the intake pipeline and exposes its ports
package module

import (
	"context"

	"faqrelay/internal/adapters/answergen"
	"faqrelay/internal/adapters/chat"
	"faqrelay/internal/core/classify"
	"faqrelay/internal/modkit"
	"faqrelay/internal/modkit/httpkit"

	corpusdom "faqrelay/internal/services/corpus/domain"
	decdom "faqrelay/internal/services/decisionlog/domain"
	dom "faqrelay/internal/services/intake/domain"
	"faqrelay/internal/services/intake/service"
	revdom "faqrelay/internal/services/review/domain"
	rotdom "faqrelay/internal/services/rotation/domain"
)

// Collaborators are the cross module ports intake drives
type Collaborators struct {
	Corpus    corpusdom.Provider
	Selector  rotdom.Selector
	Reviews   revdom.Creator
	Decisions decdom.Recorder
}

// Module defines the intake module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// genAdapter bridges the completion adapter to the domain port
type genAdapter struct{ g *answergen.Generator }

func (a genAdapter) Check(ctx context.Context, message string, corpus []classify.Entry) dom.GenResult {
	entries := make([]answergen.Entry, len(corpus))
	for i, e := range corpus {
		entries[i] = answergen.Entry{Question: e.Question, Answer: e.Answer}
	}
	r := a.g.Check(ctx, message, entries)
	return dom.GenResult{
		Matched:          r.Matched,
		Answer:           r.Answer,
		DetectedQuestion: r.DetectedQuestion,
		Err:              r.Err,
	}
}

// dirAdapter bridges the cached username resolver to the domain port
type dirAdapter struct{ r *chat.Resolver }

func (a dirAdapter) Resolve(ctx context.Context, username string) (string, error) {
	u, err := a.r.Resolve(ctx, username)
	if err != nil {
		return "", err
	}
	return u.ID, nil
}

// New constructs the intake module with its ports
func New(deps modkit.Deps, overrides Options, with Collaborators) *Module {
	if with.Corpus == nil {
		panic("intake module requires Corpus port (from services/corpus)")
	}
	if with.Decisions == nil {
		panic("intake module requires Decisions port (from services/decisionlog)")
	}

	// Load defaults, then apply non-zero overrides
	opts := FromConfig(deps.Cfg)

	if overrides.ReviewMode {
		opts.ReviewMode = true
	}
	if len(overrides.Reviewers) > 0 {
		opts.Reviewers = overrides.Reviewers
	}
	if overrides.Dedup {
		opts.Dedup = true
	}
	if overrides.DedupTTL != 0 {
		opts.DedupTTL = overrides.DedupTTL
	}
	if overrides.ChatBaseURL != "" {
		opts.ChatBaseURL = overrides.ChatBaseURL
	}
	if overrides.ChatToken != "" {
		opts.ChatToken = overrides.ChatToken
	}
	if overrides.BotPrefix != "" {
		opts.BotPrefix = overrides.BotPrefix
	}
	if overrides.GenAPIKey != "" {
		opts.GenAPIKey = overrides.GenAPIKey
	}
	if overrides.GenEndpoint != "" {
		opts.GenEndpoint = overrides.GenEndpoint
	}
	if overrides.GenModel != "" {
		opts.GenModel = overrides.GenModel
	}
	if overrides.GenTimeout != 0 {
		opts.GenTimeout = overrides.GenTimeout
	}

	if opts.ReviewMode {
		if with.Selector == nil {
			panic("intake module requires Selector port when review mode is on")
		}
		if with.Reviews == nil {
			panic("intake module requires Reviews port when review mode is on")
		}
	}

	nc := chat.NewClient(chat.Options{
		BaseURL: opts.ChatBaseURL,
		Token:   opts.ChatToken,
	})
	gen := answergen.New(answergen.Options{
		APIKey:   opts.GenAPIKey,
		Endpoint: opts.GenEndpoint,
		Model:    opts.GenModel,
		Timeout:  opts.GenTimeout,
	})

	svc := service.New(deps, service.Config{
		ReviewMode: opts.ReviewMode,
		Reviewers:  opts.Reviewers,
		Dedup:      opts.Dedup,
		DedupTTL:   opts.DedupTTL,
	}, service.Ports{
		Corpus:    with.Corpus,
		Generator: genAdapter{g: gen},
		Notifier:  chat.NewNotifier(nc, opts.BotPrefix),
		Directory: dirAdapter{r: chat.NewResolver(nc)},
		Selector:  with.Selector,
		Reviews:   with.Reviews,
		Decisions: with.Decisions,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Intake: svc}
	return m
}

// Ports returns the module ports (Intake)
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "intake" }

// Prefix returns the module config prefix (none for pipeline service)
func (m *Module) Prefix() string { return "" }

// MountRoutes returns no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
