// Package domain defines the decision log types and port
package domain

import (
	"context"
	"time"
)

// Kind tags which classifier bucket produced the decision
type Kind string

// Decision kinds. Unrelated messages are dropped silently and never logged
const (
	KindDirect   Kind = "direct"
	KindProbable Kind = "probable"
)

// Decision is one classifier outcome worth recording
type Decision struct {
	Kind            Kind
	Score           float64
	MatchedQuestion string
	ProposedAnswer  string
	ReviewID        string
	ReviewerID      string
	RoomID          string
	At              time.Time
}

// Recorder sinks decisions. Implementations never block the intake
// pipeline and swallow their own failures
type Recorder interface {
	Record(ctx context.Context, d Decision)
}
