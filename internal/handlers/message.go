package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/avinoddev/chatbot-memory/internal/models"
)

// chatService is everything the HTTP layer needs from the conversation service.
type chatService interface {
	RegisterUser(ctx context.Context, email string) (*models.User, error)
	CreateThread(ctx context.Context, userID string) (*models.Thread, error)
	PostMessage(ctx context.Context, threadID, role, content string) (string, error)
	ThreadHistory(ctx context.Context, threadID string) ([]models.ChatMessage, error)
	ListThreads(ctx context.Context) ([]models.Thread, error)
}

type MessageHandler struct {
	chat chatService
}

func NewMessageHandler(chat chatService) *MessageHandler {
	return &MessageHandler{chat: chat}
}

// Create handles POST /messages: appends the submitted message, proxies the
// full thread history to the completion provider, and returns the reply.
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	reply, err := h.chat.PostMessage(r.Context(), req.ThreadID, req.Role, req.Content)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.CreateMessageResponse{Response: reply})
}
