// Package domain defines the intake pipeline types and ports
package domain

import (
	"context"
	"time"

	"faqrelay/internal/core/classify"
)

// MessageEvent is one inbound room message from the gateway webhook
type MessageEvent struct {
	MessageID      string
	RoomID         string
	RoomName       string
	SenderID       string
	SenderUsername string
	SenderIsBot    bool
	Text           string
	At             time.Time
}

// Outcome says what the pipeline did with a message
type Outcome string

// Pipeline outcomes
const (
	OutcomeAnswered  Outcome = "answered"  // direct hit, or review mode off; answer posted
	OutcomeEscalated Outcome = "escalated" // review created and a reviewer notified
	OutcomeDropped   Outcome = "dropped"   // unrelated, too short, or generation found nothing
	OutcomeDuplicate Outcome = "duplicate" // suppressed by the dedup window
	OutcomeIgnored   Outcome = "ignored"   // bot authored
)

// Result reports the pipeline outcome for one message
type Result struct {
	Outcome  Outcome
	Score    float64
	ReviewID string
	Answer   string
	Reviewer string
}

// Handler runs the intake pipeline
type Handler interface {
	HandleMessage(ctx context.Context, ev MessageEvent) (Result, error)
}

// GenResult is the generator verdict for one message
type GenResult struct {
	Matched          bool
	Answer           string
	DetectedQuestion string
	Err              string
}

// Generator drafts an answer for a probable match. Failures surface
// inside the result, never as a panic; a failed generation is a no match
type Generator interface {
	Check(ctx context.Context, message string, corpus []classify.Entry) GenResult
}

// Directory resolves reviewer usernames to chat identities. Unknown
// names error out and are dropped before rotation, never during it
type Directory interface {
	Resolve(ctx context.Context, username string) (id string, err error)
}

// Notifier is the chat side effect seam, fire and forget
type Notifier interface {
	Deliver(ctx context.Context, roomID, text string) error
	NotifyUser(ctx context.Context, userID, text string) error
}
