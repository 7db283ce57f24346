package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/avinoddev/chatbot-memory/internal/models"
)

// CompletionClient is the boundary to the external completion provider. It is
// injected into the chat service so tests can substitute a fake.
type CompletionClient interface {
	Complete(ctx context.Context, history []models.ChatMessage) (string, error)
}

// CompletionService talks to an OpenAI-compatible chat-completions endpoint.
// One network round trip per call, no streaming, no internal retries.
type CompletionService struct {
	client *openai.Client
	model  string
}

func NewCompletionService(apiKey, baseURL, model string) *CompletionService {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &CompletionService{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Complete sends the full ordered history and returns the text of the first
// response choice.
func (s *CompletionService) Complete(ctx context.Context, history []models.ChatMessage) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history))
	for _, m := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    s.model,
		Messages: messages,
	})
	if err != nil {
		return "", classifyCompletionError(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion provider returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// classifyCompletionError maps provider failures onto the service error
// taxonomy. Anything unclassifiable passes through untyped and is answered
// as an internal error.
func classifyCompletionError(err error) error {
	status := 0

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	switch {
	case status == http.StatusTooManyRequests:
		return &RateLimitError{Message: "Completion provider rate limit exceeded"}
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &UnauthorizedError{Message: "Completion provider rejected the API credential"}
	case status >= 500:
		return &UpstreamError{Message: "Completion provider is unavailable"}
	}
	return err
}
