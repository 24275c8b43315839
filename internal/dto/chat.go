package dto

import "time"

type MessageResponse struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Kind      string    `json:"kind"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Avatar    string    `json:"avatar,omitempty"`
}

// SessionSummary is a session without its messages, for the session list
type SessionSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	MessageCount int       `json:"message_count"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type SessionListResponse struct {
	Sessions []SessionSummary `json:"sessions"`
	ActiveID string           `json:"active_id"`
}

type SessionResponse struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Active    bool              `json:"active"`
	Messages  []MessageResponse `json:"messages"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

type SendMessageRequest struct {
	Text string `json:"text"`
}

// SendMessageResponse is the outcome of one chat turn. ErrorMessage and Error
// are set when the completion failed.
type SendMessageResponse struct {
	SessionID    string           `json:"session_id"`
	UserMessage  MessageResponse  `json:"user_message"`
	BotMessage   *MessageResponse `json:"bot_message,omitempty"`
	ErrorMessage *MessageResponse `json:"error_message,omitempty"`
	ContextUsed  bool             `json:"context_used"`
	Warning      string           `json:"warning,omitempty"`
	Error        string           `json:"error,omitempty"`
	ErrorCode    string           `json:"error_code,omitempty"`
}
