package models

import "time"

// User is a chat-platform user known to the bot. The ID is the
// platform-assigned identity; profile fields are captured on first contact
// and never overwritten afterwards.
type User struct {
	ID               int64     `json:"id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name,omitempty"`
	IsBot            bool      `json:"is_bot"`
	Username         string    `json:"username,omitempty"`
	PromptTokens     int64     `json:"prompt_tokens"`
	CompletionTokens int64     `json:"completion_tokens"`
	CreatedAt        time.Time `json:"created_at"`
}

// TokenUsage is the token accounting attached to one generation call.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}
