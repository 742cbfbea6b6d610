package domain

import (
	"context"
	"time"
)

// NewReview are the facts captured at escalation time
type NewReview struct {
	SourceMessageID  string
	RoomID           string
	RoomName         string
	SenderID         string
	SenderUsername   string
	OriginalMessage  string
	DetectedQuestion string
	ProposedAnswer   string
	AssignedTo       string
}

// ActionRequest is one reviewer verdict on one review
type ActionRequest struct {
	ReviewID   string
	Action     Action
	ReviewerID string // acting reviewer chat user id
	Text       string // replacement answer, submit only
}

// Outcome reports the transition plus its delivery side effects.
// DeliveryErr is informational; a failed post never rolls the state back
type Outcome struct {
	Review      Review
	Delivered   bool
	DeliveryErr string
}

// ListQuery filters the review listing, keyset paged newest first
type ListQuery struct {
	Status Status
	Limit  int
	After  string // review id to continue after
}

// Creator captures new reviews at escalation time
type Creator interface {
	Create(ctx context.Context, n NewReview) (Review, error)
}

// Reader serves the review surfaces
type Reader interface {
	Get(ctx context.Context, id string) (Review, error)
	List(ctx context.Context, q ListQuery) ([]Review, error)
}

// Actions applies reviewer verdicts
type Actions interface {
	Apply(ctx context.Context, req ActionRequest) (Outcome, error)
}

// Sweeper expires pending reviews older than the timeout
type Sweeper interface {
	ExpirePending(ctx context.Context, olderThan time.Duration, limit int) (int, error)
}

// WorkerPort drives the periodic expiry sweep (run loop)
type WorkerPort interface {
	Run(ctx context.Context) error
}

// Notifier is the chat side effect seam. Calls are fire and forget,
// errors are reported to the caller but never retried
type Notifier interface {
	Deliver(ctx context.Context, roomID, text string) error
	NotifyUser(ctx context.Context, userID, text string) error
}
