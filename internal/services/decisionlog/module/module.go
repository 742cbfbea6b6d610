// Package module wires the decision log and exposes its ports
package module

import (
	"faqrelay/internal/adapters/chat"
	"faqrelay/internal/modkit"
	"faqrelay/internal/modkit/httpkit"
	"faqrelay/internal/services/decisionlog/service"
)

// Module defines the decision log module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the decision log module with its ports
func New(deps modkit.Deps, overrides Options) *Module {
	// Load defaults, then apply non-zero overrides
	opts := FromConfig(deps.Cfg)

	if overrides.Channel != "" {
		opts.Channel = overrides.Channel
	}
	if overrides.Team != "" {
		opts.Team = overrides.Team
	}
	if overrides.Table != "" {
		opts.Table = overrides.Table
	}
	if overrides.Batch != 0 {
		opts.Batch = overrides.Batch
	}
	if overrides.FlushEvery != 0 {
		opts.FlushEvery = overrides.FlushEvery
	}
	if overrides.ChatBaseURL != "" {
		opts.ChatBaseURL = overrides.ChatBaseURL
	}
	if overrides.ChatToken != "" {
		opts.ChatToken = overrides.ChatToken
	}

	nc := chat.NewClient(chat.Options{
		BaseURL: opts.ChatBaseURL,
		Token:   opts.ChatToken,
	})

	svc := service.New(deps, service.Config{
		Channel:    opts.Channel,
		Team:       opts.Team,
		Table:      opts.Table,
		Batch:      opts.Batch,
		FlushEvery: opts.FlushEvery,
	}, nc)

	m := &Module{deps: deps}
	m.ports = Ports{Recorder: svc}
	return m
}

// Ports returns the module ports (Recorder)
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "decisions" }

// Prefix returns the module config prefix (none for sink-only service)
func (m *Module) Prefix() string { return "" }

// MountRoutes returns no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
