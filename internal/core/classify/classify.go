// Package classify tags an incoming message as a direct corpus match, a
// probable match that needs escalation, or unrelated noise.
// A Classifier is immutable. Corpus or threshold changes build a new one
// (New) and the caller swaps it in; searches in flight keep the old value
package classify

import (
	"strings"
	"unicode/utf8"

	"faqrelay/internal/core/rank"
)

// Kind is the classification outcome tag
type Kind string

const (
	// KindDirect means the corpus answer can be sent as is
	KindDirect Kind = "direct"
	// KindProbable means escalate through generation and review
	KindProbable Kind = "probable"
	// KindUnrelated means drop silently
	KindUnrelated Kind = "unrelated"
)

// Entry is one corpus question/answer pair
type Entry struct {
	Question string
	Answer   string
}

// Result carries the outcome. Entry is meaningful only for KindDirect
type Result struct {
	Kind  Kind
	Score float64
	Entry Entry
}

// Options controls classification policy. Zero values mean defaults
type Options struct {
	// Threshold is the direct-match score bar (default 0.99). It is clamped
	// up to MinThreshold so config can never quietly loosen the bar
	Threshold float64
	// MinThreshold is the clamp floor for Threshold (default 0.8)
	MinThreshold float64
	// MinLength is the minimum rune count after trimming (default 5);
	// shorter messages classify as unrelated without touching the index
	MinLength int
	// QuestionFilter gates escalation on an interrogative cue when true.
	// Direct matches are unaffected, only the probable bucket narrows
	QuestionFilter bool
	// K1 and B pass through to the ranker
	K1 float64
	B  float64
}

const (
	defaultThreshold    = 0.99
	defaultMinThreshold = 0.8
	defaultMinLength    = 5
)

// Classifier scores messages against an immutable corpus index
type Classifier struct {
	opts    Options
	entries []Entry
	ix      *rank.Index
}

// Stats reports the live classifier facts
type Stats struct {
	CorpusSize     int     `json:"corpus_size"`
	Vocab          int     `json:"vocab"`
	AvgDocLen      float64 `json:"avg_doc_len"`
	Threshold      float64 `json:"threshold"`
	MinLength      int     `json:"min_length"`
	QuestionFilter bool    `json:"question_filter"`
}

// New builds a Classifier over entries. The entry slice is copied; entry
// order is preserved and decides score ties
func New(entries []Entry, opts Options) *Classifier {
	if opts.MinThreshold == 0 {
		opts.MinThreshold = defaultMinThreshold
	}
	if opts.Threshold == 0 {
		opts.Threshold = defaultThreshold
	}
	if opts.Threshold < opts.MinThreshold {
		opts.Threshold = opts.MinThreshold
	}
	if opts.MinLength == 0 {
		opts.MinLength = defaultMinLength
	}

	own := make([]Entry, len(entries))
	copy(own, entries)

	docs := make([]string, len(own))
	for i, e := range own {
		docs[i] = e.Question
	}

	return &Classifier{
		opts:    opts,
		entries: own,
		ix:      rank.New(docs, rank.Options{K1: opts.K1, B: opts.B}),
	}
}

// Classify runs the policy described in the package doc
func (c *Classifier) Classify(message string) Result {
	msg := strings.TrimSpace(message)
	if utf8.RuneCountInString(msg) < c.opts.MinLength {
		return Result{Kind: KindUnrelated}
	}

	doc, score, direct := c.ix.Search(msg, c.opts.Threshold)
	if direct && doc >= 0 {
		return Result{Kind: KindDirect, Score: score, Entry: c.entries[doc]}
	}
	if c.opts.QuestionFilter && !looksLikeQuestion(msg) {
		return Result{Kind: KindUnrelated, Score: score}
	}
	return Result{Kind: KindProbable, Score: score}
}

// Threshold returns the effective (clamped) direct-match bar
func (c *Classifier) Threshold() float64 { return c.opts.Threshold }

// Entries returns the indexed corpus. Callers must not mutate it
func (c *Classifier) Entries() []Entry { return c.entries }

// Stats returns the live classifier facts for the meta surface
func (c *Classifier) Stats() Stats {
	return Stats{
		CorpusSize:     c.ix.Size(),
		Vocab:          c.ix.Vocab(),
		AvgDocLen:      c.ix.AvgDocLen(),
		Threshold:      c.opts.Threshold,
		MinLength:      c.opts.MinLength,
		QuestionFilter: c.opts.QuestionFilter,
	}
}

// interrogative cues for the optional question filter, lowercase
var questionCues = map[string]struct{}{
	"how": {}, "what": {}, "why": {}, "where": {}, "when": {}, "who": {},
	"which": {}, "can": {}, "could": {}, "do": {}, "does": {}, "is": {},
	"are": {}, "should": {}, "would": {}, "will": {}, "may": {},
}

func looksLikeQuestion(msg string) bool {
	if strings.Contains(msg, "?") {
		return true
	}
	first, _, _ := strings.Cut(strings.ToLower(msg), " ")
	_, ok := questionCues[first]
	return ok
}
