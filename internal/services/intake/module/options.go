package module

import (
	"time"

	"faqrelay/internal/platform/config"
)

// Options controls the intake pipeline wiring
type Options struct {
	ReviewMode bool
	Reviewers  []string
	Dedup      bool
	DedupTTL   time.Duration

	ChatBaseURL string
	ChatToken   string
	BotPrefix   string

	GenAPIKey   string
	GenEndpoint string
	GenModel    string
	GenTimeout  time.Duration
}

// FromConfig reads with FAQRELAY_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("FAQRELAY_")
	return Options{
		ReviewMode: c.MayBool("REVIEW_ENABLE", true),
		Reviewers:  c.MayCSV("REVIEW_REVIEWERS", nil),
		Dedup:      c.MayBool("INTAKE_DEDUP", false),
		DedupTTL:   c.MayDuration("INTAKE_DEDUP_TTL", 10*time.Minute),

		ChatBaseURL: c.MayString("CHAT_BASE_URL", ""),
		ChatToken:   c.MayString("CHAT_TOKEN", ""),
		BotPrefix:   c.MayString("CHAT_BOT_PREFIX", "[faqrelay]"),

		GenAPIKey:   c.MayString("ANSWERGEN_API_KEY", ""),
		GenEndpoint: c.MayString("ANSWERGEN_API_ENDPOINT", ""),
		GenModel:    c.MayString("ANSWERGEN_MODEL", "gpt-4o-mini"),
		GenTimeout:  c.MayDuration("ANSWERGEN_TIMEOUT", 20*time.Second),
	}
}
