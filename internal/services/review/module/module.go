// Package module wires the review service and exposes its ports
package module

import (
	"faqrelay/internal/adapters/chat"
	"faqrelay/internal/modkit"
	"faqrelay/internal/modkit/httpkit"
	"faqrelay/internal/services/review/service"
)

// Module defines the review module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the review module with its ports
func New(deps modkit.Deps, overrides Options) *Module {
	// Load defaults, then apply non-zero overrides
	opts := FromConfig(deps.Cfg)

	if overrides.TTL != 0 {
		opts.TTL = overrides.TTL
	}
	if overrides.SweepEvery != 0 {
		opts.SweepEvery = overrides.SweepEvery
	}
	if overrides.SweepBatch != 0 {
		opts.SweepBatch = overrides.SweepBatch
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

	nc := chat.NewClient(chat.Options{
		BaseURL: opts.ChatBaseURL,
		Token:   opts.ChatToken,
	})
	svc := service.New(deps, chat.NewNotifier(nc, opts.BotPrefix))

	m := &Module{deps: deps}
	m.ports = Ports{
		Actions: svc,
		Reviews: svc,
		Intake:  svc,
		Sweeper: svc,
		Worker:  service.NewWorker(svc, opts.SweepEvery, opts.TTL, opts.SweepBatch),
	}
	return m
}

// Ports returns the module ports (Actions, Reviews, Intake, Sweeper, Worker)
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "review" }

// Prefix returns the module config prefix (none for worker-side service)
func (m *Module) Prefix() string { return "" }

// MountRoutes returns no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
