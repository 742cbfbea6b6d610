// Package answergen calls an OpenAI compatible backend to draft FAQ answers
package answergen

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"faqrelay/internal/platform/logger"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 20 * time.Second
)

// Options configures the Generator
type Options struct {
	APIKey   string
	Endpoint string // optional OpenAI compatible base url
	Model    string
	Timeout  time.Duration
}

// Entry is one question answer pair handed to the backend as grounding
type Entry struct {
	Question string
	Answer   string
}

// Result is the backend verdict for one message
// failures never surface as errors, they come back as Matched false with Err set
type Result struct {
	Matched          bool
	Answer           string
	DetectedQuestion string
	Err              string
}

// Generator wraps the completion client
type Generator struct {
	cl      *openai.Client
	model   string
	timeout time.Duration
	log     logger.Logger
}

// New builds a Generator. A missing api key is tolerated here and reported
// per call so a half configured deploy still serves direct matches
func New(o Options) *Generator {
	g := &Generator{
		model:   o.Model,
		timeout: o.Timeout,
		log:     *logger.Named("answergen"),
	}
	if g.model == "" {
		g.model = defaultModel
	}
	if g.timeout <= 0 {
		g.timeout = defaultTimeout
	}
	if strings.TrimSpace(o.APIKey) == "" {
		return g
	}
	cfg := openai.DefaultConfig(o.APIKey)
	if o.Endpoint != "" {
		cfg.BaseURL = strings.TrimRight(o.Endpoint, "/")
	}
	g.cl = openai.NewClientWithConfig(cfg)
	return g
}

// verdict is the JSON shape the model is instructed to emit
type verdict struct {
	Matched  bool   `json:"matched"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

const systemPrompt = `You answer workspace questions strictly from the provided FAQ.
Decide whether the user message is asking one of the FAQ questions.
Reply with JSON only: {"matched": bool, "question": string, "answer": string}.
Set matched=false when no FAQ entry covers the message. Do not invent answers.`

// Check asks the backend whether message maps onto a corpus entry
func (g *Generator) Check(ctx context.Context, message string, corpus []Entry) Result {
	if g == nil || g.cl == nil {
		return Result{Err: "answer generator not configured"}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var sb strings.Builder
	sb.WriteString("FAQ:\n")
	for i, e := range corpus {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("Q: ")
		sb.WriteString(e.Question)
		sb.WriteString("\nA: ")
		sb.WriteString(e.Answer)
		sb.WriteString("\n")
	}
	sb.WriteString("\nMessage: ")
	sb.WriteString(message)

	resp, err := g.cl.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: 0.2,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: sb.String()},
		},
	})
	if err != nil {
		g.log.Warn().Err(err).Msg("answer generation failed")
		return Result{Err: err.Error()}
	}
	if len(resp.Choices) == 0 {
		return Result{Err: "empty completion"}
	}

	raw := jsonBody(resp.Choices[0].Message.Content)
	var v verdict
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		g.log.Warn().Err(err).Msg("answer generation parse failed")
		return Result{Err: "unparseable completion"}
	}
	if !v.Matched || strings.TrimSpace(v.Answer) == "" {
		return Result{}
	}
	return Result{
		Matched:          true,
		Answer:           strings.TrimSpace(v.Answer),
		DetectedQuestion: strings.TrimSpace(v.Question),
	}
}

// jsonBody strips markdown fences some models wrap around JSON output
func jsonBody(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
	}
	// tolerate prose around the object
	if i := strings.Index(s, "{"); i > 0 {
		s = s[i:]
	}
	if i := strings.LastIndex(s, "}"); i >= 0 && i+1 < len(s) {
		s = s[:i+1]
	}
	return strings.TrimSpace(s)
}
