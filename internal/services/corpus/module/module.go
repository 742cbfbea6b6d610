// Package module wires the corpus provider and exposes its ports
package module

import (
	"faqrelay/internal/modkit"
	"faqrelay/internal/modkit/httpkit"
	"faqrelay/internal/services/corpus/service"
)

// Module defines the corpus module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the corpus module with its ports
func New(deps modkit.Deps, overrides Options) *Module {
	// Load defaults, then apply non-zero overrides
	opts := FromConfig(deps.Cfg)

	if overrides.Threshold != 0 {
		opts.Threshold = overrides.Threshold
	}
	if overrides.MinThreshold != 0 {
		opts.MinThreshold = overrides.MinThreshold
	}
	if overrides.MinLength != 0 {
		opts.MinLength = overrides.MinLength
	}
	if overrides.QuestionFilter {
		opts.QuestionFilter = true
	}

	svc := service.New(deps, service.Config{
		Threshold:      opts.Threshold,
		MinThreshold:   opts.MinThreshold,
		MinLength:      opts.MinLength,
		QuestionFilter: opts.QuestionFilter,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Corpus: svc}
	return m
}

// Ports returns the module ports (Corpus)
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "corpus" }

// Prefix returns the module config prefix (none for provider-only service)
func (m *Module) Prefix() string { return "" }

// MountRoutes returns no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
