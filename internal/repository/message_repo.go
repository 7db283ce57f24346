package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avinoddev/chatbot-memory/internal/models"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

// Append adds a message to the end of a thread. Messages are never updated or
// deleted afterwards.
func (r *MessageRepo) Append(ctx context.Context, threadID uuid.UUID, role, content string) (*models.Message, error) {
	msg := &models.Message{
		ID:       uuid.New(),
		ThreadID: threadID,
		Role:     role,
		Content:  content,
	}

	query := `INSERT INTO messages (id, thread_id, role, content)
		VALUES ($1, $2, $3, $4) RETURNING created_at`

	if err := r.pool.QueryRow(ctx, query, msg.ID, msg.ThreadID, msg.Role, msg.Content).Scan(&msg.CreatedAt); err != nil {
		return nil, err
	}
	return msg, nil
}

// ListByThread returns every message of a thread in chronological order. An
// unknown thread yields an empty slice, not an error.
func (r *MessageRepo) ListByThread(ctx context.Context, threadID uuid.UUID) ([]models.Message, error) {
	query := `SELECT id, thread_id, role, content, created_at
		FROM messages WHERE thread_id = $1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, threadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]models.Message, 0)
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.ID, &msg.ThreadID, &msg.Role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
