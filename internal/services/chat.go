package services

import (
	"context"
	"errors"
	"regexp"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/avinoddev/chatbot-memory/internal/models"
)

type userStore interface {
	Create(ctx context.Context, email string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type threadStore interface {
	Create(ctx context.Context, userID uuid.UUID) (*models.Thread, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Thread, error)
	List(ctx context.Context) ([]models.Thread, error)
}

type messageStore interface {
	Append(ctx context.Context, threadID uuid.UUID, role, content string) (*models.Message, error)
	ListByThread(ctx context.Context, threadID uuid.UUID) ([]models.Message, error)
}

// ChatService sequences every store write and the one external completion call.
type ChatService struct {
	users      userStore
	threads    threadStore
	messages   messageStore
	completion CompletionClient
}

func NewChatService(users userStore, threads threadStore, messages messageStore, completion CompletionClient) *ChatService {
	return &ChatService{
		users:      users,
		threads:    threads,
		messages:   messages,
		completion: completion,
	}
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RegisterUser creates a user. Email is the only field and must be unique.
func (s *ChatService) RegisterUser(ctx context.Context, email string) (*models.User, error) {
	if !emailRegex.MatchString(email) {
		return nil, &ValidationError{Fields: map[string]string{"email": "Invalid email format"}}
	}

	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil, &ConflictError{Message: "Email already registered"}
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	user, err := s.users.Create(ctx, email)
	if err != nil {
		// Unique index backstops the check-then-insert race.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, &ConflictError{Message: "Email already registered"}
		}
		return nil, err
	}
	return user, nil
}

// CreateThread opens a new conversation thread for an existing user. The owner
// check is enforced here: ids arrive as opaque strings, and a string that does
// not resolve to a stored user cannot own a thread.
func (s *ChatService) CreateThread(ctx context.Context, userID string) (*models.Thread, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, &NotFoundError{Message: "User not found"}
	}

	if _, err := s.users.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "User not found"}
		}
		return nil, err
	}

	return s.threads.Create(ctx, id)
}

// PostMessage handles one message submission:
//
//	validate thread → persist incoming message → assemble full history →
//	call completion provider → persist assistant reply.
//
// The incoming message commits before the provider call and stays committed
// even if that call fails; the assistant reply is only written after a
// successful response. There is no transaction spanning the external call.
func (s *ChatService) PostMessage(ctx context.Context, threadID, role, content string) (string, error) {
	fieldErrors := make(map[string]string)
	if role != models.RoleUser && role != models.RoleAssistant {
		fieldErrors["role"] = `Role must be "user" or "assistant"`
	}
	if content == "" {
		fieldErrors["content"] = "Content is required"
	}
	if len(fieldErrors) > 0 {
		return "", &ValidationError{Fields: fieldErrors}
	}

	id, err := uuid.Parse(threadID)
	if err != nil {
		return "", &NotFoundError{Message: "Thread not found"}
	}
	if _, err := s.threads.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", &NotFoundError{Message: "Thread not found"}
		}
		return "", err
	}

	if _, err := s.messages.Append(ctx, id, role, content); err != nil {
		return "", err
	}

	stored, err := s.messages.ListByThread(ctx, id)
	if err != nil {
		return "", err
	}

	reply, err := s.completion.Complete(ctx, buildHistory(stored))
	if err != nil {
		// The user message above stays committed; only the reply is lost.
		return "", err
	}

	if _, err := s.messages.Append(ctx, id, models.RoleAssistant, reply); err != nil {
		return "", err
	}
	return reply, nil
}

// ThreadHistory returns the chronological (role, content) pairs of a thread.
// The read path does not validate thread existence: unknown threads answer
// with an empty history.
func (s *ChatService) ThreadHistory(ctx context.Context, threadID string) ([]models.ChatMessage, error) {
	id, err := uuid.Parse(threadID)
	if err != nil {
		return []models.ChatMessage{}, nil
	}

	stored, err := s.messages.ListByThread(ctx, id)
	if err != nil {
		return nil, err
	}
	return buildHistory(stored), nil
}

func (s *ChatService) ListThreads(ctx context.Context) ([]models.Thread, error) {
	return s.threads.List(ctx)
}

// buildHistory maps stored messages onto the wire pairs sent to the completion
// provider, preserving order. No filtering, no truncation.
func buildHistory(messages []models.Message) []models.ChatMessage {
	history := make([]models.ChatMessage, 0, len(messages))
	for _, msg := range messages {
		history = append(history, models.ChatMessage{Role: msg.Role, Content: msg.Content})
	}
	return history
}
