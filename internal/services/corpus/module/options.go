package module

import (
	"faqrelay/internal/platform/config"
)

// Options controls the classification policy
type Options struct {
	Threshold      float64
	MinThreshold   float64
	MinLength      int
	QuestionFilter bool
}

// FromConfig reads with FAQRELAY_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("FAQRELAY_")
	return Options{
		Threshold:      c.MayFloat64("CLASSIFY_THRESHOLD", 0.99),
		MinThreshold:   c.MayFloat64("CLASSIFY_MIN_THRESHOLD", 0.8),
		MinLength:      c.MayInt("CLASSIFY_MIN_LENGTH", 5),
		QuestionFilter: c.MayBool("CLASSIFY_QUESTION_FILTER", false),
	}
}
