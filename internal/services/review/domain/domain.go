// Package domain defines the review lifecycle types and ports
package domain

import "time"

// Status is the lifecycle state of a review
type Status string

// Lifecycle states. Approved, rejected, and expired are terminal
const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusEditing  Status = "editing"
	StatusExpired  Status = "expired"
)

// Action is a reviewer initiated lifecycle edge
type Action string

// Reviewer actions. The expiry sweep is not an action, it runs as a
// guarded bulk update in the repo
const (
	ActionApprove    Action = "approve"
	ActionReject     Action = "reject"
	ActionEdit       Action = "edit"
	ActionSubmitEdit Action = "submit"
	ActionCancelEdit Action = "cancel"
)

// transitions is the closed edge table. Any pair not listed is rejected
var transitions = map[Status]map[Action]Status{
	StatusPending: {
		ActionApprove: StatusApproved,
		ActionReject:  StatusRejected,
		ActionEdit:    StatusEditing,
	},
	StatusEditing: {
		ActionSubmitEdit: StatusApproved,
		ActionCancelEdit: StatusPending,
	},
}

// Next returns the target state for one edge, false when the edge is
// not in the table
func Next(from Status, a Action) (Status, bool) {
	to, ok := transitions[from][a]
	return to, ok
}

// Terminal reports whether no edge leaves the state
func Terminal(s Status) bool { return len(transitions[s]) == 0 }

// Delivers reports whether the edge posts the answer to the source room
func Delivers(a Action) bool { return a == ActionApprove || a == ActionSubmitEdit }

// ValidStatus reports whether s is a known lifecycle state
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusEditing, StatusExpired:
		return true
	}
	return false
}

// ValidAction reports whether a is a known reviewer action
func ValidAction(a Action) bool {
	switch a {
	case ActionApprove, ActionReject, ActionEdit, ActionSubmitEdit, ActionCancelEdit:
		return true
	}
	return false
}

// Review is one escalated answer waiting for a human verdict
type Review struct {
	ID               string
	SourceMessageID  string
	RoomID           string
	RoomName         string
	SenderID         string
	SenderUsername   string
	OriginalMessage  string
	DetectedQuestion string
	ProposedAnswer   string
	AssignedTo       string
	Status           Status
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
