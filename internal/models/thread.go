package models

import (
	"time"

	"github.com/google/uuid"
)

type Thread struct {
	ID        uuid.UUID `json:"thread_id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Message struct {
	ID        uuid.UUID `json:"id"`
	ThreadID  uuid.UUID `json:"thread_id"`
	Role      string    `json:"role"` // "user" for ask, "assistant" for answer
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type CreateThreadRequest struct {
	UserID string `json:"user_id"`
}

type CreateThreadResponse struct {
	ThreadID string `json:"thread_id"`
}
