// Package domain holds DTOs for the reviews http contract
package domain

import (
	"time"

	revdom "faqrelay/internal/services/review/domain"
)

// GetInput names one review
type GetInput struct {
	ReviewID string `json:"review_id" validate:"required,uuid4" example:"8b7e6a52-..."`
}

// ListInput filters the review listing, keyset paged newest first
type ListInput struct {
	Status string `json:"status,omitempty" validate:"omitempty,oneof=pending approved rejected editing expired" example:"pending"`
	Limit  int    `json:"limit,omitempty" validate:"omitempty,min=1,max=200" example:"50"`
	After  string `json:"after,omitempty" validate:"omitempty,uuid4" example:"8b7e6a52-..."`
}

// ActionInput is one reviewer verdict without extra payload
type ActionInput struct {
	ReviewID   string `json:"review_id" validate:"required,uuid4"`
	ReviewerID string `json:"reviewer_id" validate:"required,min=1,max=64" example:"u7hz2m..."`
}

// SubmitInput carries the replacement answer text
type SubmitInput struct {
	ReviewID   string `json:"review_id" validate:"required,uuid4"`
	ReviewerID string `json:"reviewer_id" validate:"required,min=1,max=64"`
	Text       string `json:"text" validate:"required,min=1,max=16384"`
}

// ReviewRow is the wire view of one review
type ReviewRow struct {
	ReviewID         string    `json:"review_id"`
	SourceMessageID  string    `json:"source_message_id"`
	RoomID           string    `json:"room_id"`
	RoomName         string    `json:"room_name,omitempty"`
	SenderID         string    `json:"sender_id,omitempty"`
	SenderUsername   string    `json:"sender_username,omitempty"`
	OriginalMessage  string    `json:"original_message"`
	DetectedQuestion string    `json:"detected_question,omitempty"`
	ProposedAnswer   string    `json:"proposed_answer"`
	AssignedTo       string    `json:"assigned_to,omitempty"`
	Status           string    `json:"status" example:"pending"`
	Version          int       `json:"version"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ActionOutput reports the transition and its delivery side effect
type ActionOutput struct {
	Review        ReviewRow `json:"review"`
	Delivered     bool      `json:"delivered"`
	DeliveryError string    `json:"delivery_error,omitempty"`
}

// Row maps a domain review onto the wire view
func Row(rv revdom.Review) ReviewRow {
	return ReviewRow{
		ReviewID:         rv.ID,
		SourceMessageID:  rv.SourceMessageID,
		RoomID:           rv.RoomID,
		RoomName:         rv.RoomName,
		SenderID:         rv.SenderID,
		SenderUsername:   rv.SenderUsername,
		OriginalMessage:  rv.OriginalMessage,
		DetectedQuestion: rv.DetectedQuestion,
		ProposedAnswer:   rv.ProposedAnswer,
		AssignedTo:       rv.AssignedTo,
		Status:           string(rv.Status),
		Version:          rv.Version,
		CreatedAt:        rv.CreatedAt,
		UpdatedAt:        rv.UpdatedAt,
	}
}
