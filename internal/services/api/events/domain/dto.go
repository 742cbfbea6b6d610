// Package domain holds DTOs for the events http contract
package domain

// MessageEventInput is the gateway webhook payload for one room message
type MessageEventInput struct {
	MessageID      string `json:"message_id" validate:"required,min=1,max=64" example:"p8fn1q..."`
	RoomID         string `json:"room_id" validate:"required,min=1,max=64" example:"c4xr9k..."`
	RoomName       string `json:"room_name,omitempty" validate:"omitempty,max=128" example:"town-square"`
	SenderID       string `json:"sender_id,omitempty" validate:"omitempty,max=64" example:"u7hz2m..."`
	SenderUsername string `json:"sender_username,omitempty" validate:"omitempty,max=128" example:"casey"`
	SenderIsBot    bool   `json:"sender_is_bot,omitempty"`
	Text           string `json:"text" validate:"required,max=16384" example:"how do I create a channel?"`
}

// MessageEventOutput reports what the pipeline did with the message
type MessageEventOutput struct {
	Outcome  string  `json:"outcome" example:"escalated"`
	Score    float64 `json:"score" example:"0.41"`
	ReviewID string  `json:"review_id,omitempty" example:"8b7e6a52-..."`
	Reviewer string  `json:"reviewer,omitempty" example:"alice"`
	Answer   string  `json:"answer,omitempty"`
}
