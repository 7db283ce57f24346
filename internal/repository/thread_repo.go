package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avinoddev/chatbot-memory/internal/models"
)

type ThreadRepo struct {
	pool *pgxpool.Pool
}

func NewThreadRepo(pool *pgxpool.Pool) *ThreadRepo {
	return &ThreadRepo{pool: pool}
}

func (r *ThreadRepo) Create(ctx context.Context, userID uuid.UUID) (*models.Thread, error) {
	thread := &models.Thread{ID: uuid.New(), UserID: userID}

	query := `INSERT INTO threads (id, user_id) VALUES ($1, $2) RETURNING created_at`

	if err := r.pool.QueryRow(ctx, query, thread.ID, thread.UserID).Scan(&thread.CreatedAt); err != nil {
		return nil, err
	}
	return thread, nil
}

func (r *ThreadRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Thread, error) {
	thread := &models.Thread{}
	query := `SELECT id, user_id, created_at FROM threads WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(&thread.ID, &thread.UserID, &thread.CreatedAt)
	if err != nil {
		return nil, err
	}
	return thread, nil
}

func (r *ThreadRepo) List(ctx context.Context) ([]models.Thread, error) {
	query := `SELECT id, user_id, created_at FROM threads ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	threads := make([]models.Thread, 0)
	for rows.Next() {
		var thread models.Thread
		if err := rows.Scan(&thread.ID, &thread.UserID, &thread.CreatedAt); err != nil {
			return nil, err
		}
		threads = append(threads, thread)
	}
	return threads, rows.Err()
}
