package topics

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkravets/linkjournal/internal/common"
	"github.com/mkravets/linkjournal/internal/dbx"
	"github.com/mkravets/linkjournal/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, userID, name string) (*models.Topic, error) {
	query :=
		`INSERT INTO topics (user_id, name)
		 VALUES ($1, $2)
		 RETURNING id, created_at
		 `

	topic := &models.Topic{UserID: userID, Name: name}
	err := r.db.QueryRowContext(ctx, query, userID, name).Scan(&topic.ID, &topic.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return topic, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Topic, error) {
	query :=
		`SELECT id, user_id, name, created_at FROM topics
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	topics := []models.Topic{}
	for rows.Next() {
		var t models.Topic
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return topics, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, id string) (*models.Topic, error) {
	query :=
		`SELECT id, user_id, name, created_at FROM topics
		 WHERE id = $1 AND user_id = $2
		 `

	topic := &models.Topic{}
	err := r.db.QueryRowContext(ctx, query, id, userID).
		Scan(&topic.ID, &topic.UserID, &topic.Name, &topic.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return topic, nil
}

func (r *PostgresRepository) UpdateName(ctx context.Context, userID, id, name string) error {
	query :=
		`UPDATE topics SET name = $3
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID, name)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query :=
		`DELETE FROM topics
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}
