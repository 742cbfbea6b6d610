package module

import (
	"time"

	"faqrelay/internal/platform/config"
)

// Options controls the decision log sinks
type Options struct {
	Channel     string
	Team        string
	Table       string
	Batch       int
	FlushEvery  time.Duration
	ChatBaseURL string
	ChatToken   string
}

// FromConfig reads with FAQRELAY_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("FAQRELAY_")
	return Options{
		Channel:     c.MayString("DECISIONS_CHANNEL", ""),
		Team:        c.MayString("DECISIONS_TEAM", ""),
		Table:       c.MayString("DECISIONS_TABLE", "faqrelay.decisions"),
		Batch:       c.MayInt("DECISIONS_BATCH", 64),
		FlushEvery:  c.MayDuration("DECISIONS_FLUSH", 2*time.Second),
		ChatBaseURL: c.MayString("CHAT_BASE_URL", ""),
		ChatToken:   c.MayString("CHAT_TOKEN", ""),
	}
}
