// Package domain defines the rotation ports
package domain

import "context"

// Selector picks the next reviewer in round robin order over the given
// list. The list must already be resolved; callers drop unknown names
// before rotation, never during it
type Selector interface {
	SelectNext(ctx context.Context, reviewers []string) (string, error)
}
