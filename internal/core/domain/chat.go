package domain

import "time"

// Chat roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ChatMessage is one turn in a documentation chat conversation.
type ChatMessage struct {
	// Role is "user", "assistant", or "system".
	Role string

	// Content is the message text.
	Content string

	// Timestamp is when the message was produced.
	Timestamp time.Time
}

// ChatResponse is the answer to a documentation question.
type ChatResponse struct {
	// Message is the assistant's reply.
	Message string

	// Sources are the display names of documents used as context.
	Sources []string
}
