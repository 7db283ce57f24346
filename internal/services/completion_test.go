package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avinoddev/chatbot-memory/internal/models"
)

func newTestCompletionService(t *testing.T, handler http.HandlerFunc) *CompletionService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewCompletionService("test-key", srv.URL+"/v1", "test-model")
}

func providerError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]interface{}{
			"message": message,
			"type":    "test_error",
		},
	})
}

func TestComplete_ReturnsFirstChoice(t *testing.T) {
	var gotBody struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	svc := newTestCompletionService(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"message":       map[string]string{"role": "assistant", "content": "hello!"},
					"finish_reason": "stop",
				},
				{
					"index":         1,
					"message":       map[string]string{"role": "assistant", "content": "ignored"},
					"finish_reason": "stop",
				},
			},
		})
	})

	history := []models.ChatMessage{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
		{Role: "user", Content: "how are you?"},
	}

	reply, err := svc.Complete(context.Background(), history)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if reply != "hello!" {
		t.Errorf("expected first choice content, got %q", reply)
	}

	// The full ordered history went over the wire.
	if gotBody.Model != "test-model" {
		t.Errorf("expected model test-model, got %q", gotBody.Model)
	}
	if len(gotBody.Messages) != len(history) {
		t.Fatalf("expected %d messages sent, got %d", len(history), len(gotBody.Messages))
	}
	for i, m := range gotBody.Messages {
		if m.Role != history[i].Role || m.Content != history[i].Content {
			t.Errorf("message %d: got (%s, %s), want (%s, %s)", i, m.Role, m.Content, history[i].Role, history[i].Content)
		}
	}
}

func TestComplete_FailureClassification(t *testing.T) {
	history := []models.ChatMessage{{Role: "user", Content: "hi"}}

	t.Run("rate limited", func(t *testing.T) {
		svc := newTestCompletionService(t, func(w http.ResponseWriter, r *http.Request) {
			providerError(w, http.StatusTooManyRequests, "quota exceeded")
		})
		_, err := svc.Complete(context.Background(), history)
		var rateLimited *RateLimitError
		if !errors.As(err, &rateLimited) {
			t.Fatalf("expected RateLimitError, got %T: %v", err, err)
		}
	})

	t.Run("bad credential", func(t *testing.T) {
		svc := newTestCompletionService(t, func(w http.ResponseWriter, r *http.Request) {
			providerError(w, http.StatusUnauthorized, "invalid api key")
		})
		_, err := svc.Complete(context.Background(), history)
		var unauthorized *UnauthorizedError
		if !errors.As(err, &unauthorized) {
			t.Fatalf("expected UnauthorizedError, got %T: %v", err, err)
		}
	})

	t.Run("provider down", func(t *testing.T) {
		svc := newTestCompletionService(t, func(w http.ResponseWriter, r *http.Request) {
			providerError(w, http.StatusInternalServerError, "server exploded")
		})
		_, err := svc.Complete(context.Background(), history)
		var upstream *UpstreamError
		if !errors.As(err, &upstream) {
			t.Fatalf("expected UpstreamError, got %T: %v", err, err)
		}
	})

	t.Run("unparseable failure stays untyped", func(t *testing.T) {
		svc := newTestCompletionService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
			w.Write([]byte("not json"))
		})
		_, err := svc.Complete(context.Background(), history)
		if err == nil {
			t.Fatal("expected an error")
		}
		var rateLimited *RateLimitError
		var unauthorized *UnauthorizedError
		var upstream *UpstreamError
		if errors.As(err, &rateLimited) || errors.As(err, &unauthorized) || errors.As(err, &upstream) {
			t.Fatalf("expected untyped error, got %T", err)
		}
	})

	t.Run("empty choices", func(t *testing.T) {
		svc := newTestCompletionService(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id":      "chatcmpl-test",
				"object":  "chat.completion",
				"choices": []interface{}{},
			})
		})
		_, err := svc.Complete(context.Background(), history)
		if err == nil {
			t.Fatal("expected an error for an empty choice list")
		}
	})
}
