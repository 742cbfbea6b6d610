// Package domain defines the corpus ports and row types
package domain

import (
	"context"

	"faqrelay/internal/core/classify"
)

// Entry is one stored corpus row in reviewer-facing order
type Entry struct {
	ID       int64
	Question string
	Answer   string
	Position int
}

// Provider hands out the live classifier and rebuilds it on demand.
// Snapshot never returns nil; before the first load it is an empty index
type Provider interface {
	Snapshot() *classify.Classifier
	Reload(ctx context.Context) (classify.Stats, error)
}
