// Package modkit provides module wiring and core deps
package modkit

import (
	"faqrelay/internal/modkit/repokit"
	"faqrelay/internal/platform/config"
	"faqrelay/internal/platform/logger"
	"faqrelay/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
	KV  store.KV
}

// ZeroOK returns true when deps are safe to use with zero values in tests
// consumers should still nil check for optional stores
func (d Deps) ZeroOK() bool { return true }
