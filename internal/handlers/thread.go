package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avinoddev/chatbot-memory/internal/models"
)

type ThreadHandler struct {
	chat chatService
}

func NewThreadHandler(chat chatService) *ThreadHandler {
	return &ThreadHandler{chat: chat}
}

// Create handles POST /threads.
func (h *ThreadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateThreadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	thread, err := h.chat.CreateThread(r.Context(), req.UserID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.CreateThreadResponse{ThreadID: thread.ID.String()})
}

// History handles GET /threads/{thread_id}. Unknown threads answer with an
// empty history rather than 404.
func (h *ThreadHandler) History(w http.ResponseWriter, r *http.Request) {
	threadID := chi.URLParam(r, "thread_id")

	history, err := h.chat.ThreadHistory(r.Context(), threadID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ThreadHistoryResponse{History: history})
}

// List handles GET /threads.
func (h *ThreadHandler) List(w http.ResponseWriter, r *http.Request) {
	threads, err := h.chat.ListThreads(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, threads)
}
