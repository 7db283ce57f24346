package models

// ChatMessage represents a single (role, content) pair sent to the completion provider.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// CreateMessageRequest is the payload for submitting a message to a thread.
type CreateMessageRequest struct {
	ThreadID string `json:"thread_id"`
	Role     string `json:"role"`
	Content  string `json:"content"`
}

// CreateMessageResponse carries the assistant reply text.
type CreateMessageResponse struct {
	Response string `json:"response"`
}

// ThreadHistoryResponse is the full chronological history of one thread.
type ThreadHistoryResponse struct {
	History []ChatMessage `json:"history"`
}

// API Error response
type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}
