package module

import (
	"time"

	"faqrelay/internal/platform/config"
)

// Options controls the review service wiring
type Options struct {
	TTL         time.Duration
	SweepEvery  time.Duration
	SweepBatch  int
	ChatBaseURL string
	ChatToken   string
	BotPrefix   string
}

// FromConfig reads with FAQRELAY_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("FAQRELAY_")
	return Options{
		TTL:         c.MayDuration("REVIEW_TTL", 60*time.Minute),
		SweepEvery:  c.MayDuration("SWEEP_EVERY", time.Minute),
		SweepBatch:  c.MayInt("SWEEP_BATCH", 500),
		ChatBaseURL: c.MayString("CHAT_BASE_URL", ""),
		ChatToken:   c.MayString("CHAT_TOKEN", ""),
		BotPrefix:   c.MayString("CHAT_BOT_PREFIX", "[faqrelay]"),
	}
}
