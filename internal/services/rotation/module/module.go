// Package module wires the rotation service and exposes its ports
package module

import (
	"faqrelay/internal/modkit"
	"faqrelay/internal/modkit/httpkit"
	"faqrelay/internal/services/rotation/service"
)

// Module defines the rotation module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the rotation module with its ports
func New(deps modkit.Deps) *Module {
	svc := service.New(deps)

	m := &Module{deps: deps}
	m.ports = Ports{Selector: svc}
	return m
}

// Ports returns the module ports (Selector)
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "rotation" }

// Prefix returns the module config prefix (none for selector-only service)
func (m *Module) Prefix() string { return "" }

// MountRoutes returns no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
