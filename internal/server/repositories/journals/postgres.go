package journals

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

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

// topicIDValue maps the wire representation ("" = uncategorized) to the
// nullable column.
func topicIDValue(topicID string) any {
	if topicID == "" {
		return nil
	}
	return topicID
}

func scanJournal(scan func(dest ...any) error) (*models.Journal, error) {
	var (
		j       models.Journal
		topicID sql.NullString
	)
	err := scan(&j.ID, &j.UserID, &topicID, &j.Name, &j.Link, &j.Description, &j.Screenshot, &j.IsImportant, &j.CreatedAt)
	if err != nil {
		return nil, err
	}
	j.TopicID = topicID.String
	return &j, nil
}

const journalColumns = `id, user_id, topic_id, name, link, description, screenshot, is_important, created_at`

func (r *PostgresRepository) Create(ctx context.Context, journal *models.Journal) (*models.Journal, error) {
	query :=
		`INSERT INTO journals (user_id, topic_id, name, link, description, screenshot)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, is_important, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		journal.UserID, topicIDValue(journal.TopicID), journal.Name, journal.Link,
		journal.Description, journal.Screenshot).
		Scan(&journal.ID, &journal.IsImportant, &journal.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return journal, nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]models.Journal, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	journals := []models.Journal{}
	for rows.Next() {
		j, err := scanJournal(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		journals = append(journals, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return journals, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 `
	return r.list(ctx, query, userID)
}

func (r *PostgresRepository) ListByTopic(ctx context.Context, userID, topicID string) ([]models.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals
		 WHERE user_id = $1 AND topic_id = $2
		 ORDER BY created_at DESC
		 `
	return r.list(ctx, query, userID, topicID)
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, id string) (*models.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals
		 WHERE id = $1 AND user_id = $2
		 `

	j, err := scanJournal(r.db.QueryRowContext(ctx, query, id, userID).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return j, nil
}

func (r *PostgresRepository) Update(ctx context.Context, userID, id string, upd Update) error {
	sets := []string{}
	args := []any{id, userID}

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.TopicID != nil {
		add("topic_id", topicIDValue(*upd.TopicID))
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Link != nil {
		add("link", *upd.Link)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Screenshot != nil {
		add("screenshot", *upd.Screenshot)
	}
	if upd.IsImportant != nil {
		add("is_important", *upd.IsImportant)
	}
	if len(sets) == 0 {
		return nil
	}

	query := fmt.Sprintf(
		`UPDATE journals SET %s
		 WHERE id = $1 AND user_id = $2
		 `, strings.Join(sets, ", "))

	res, err := r.db.ExecContext(ctx, query, args...)
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
		`DELETE FROM journals
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

func (r *PostgresRepository) ToggleImportant(ctx context.Context, userID, id string) (bool, error) {
	query :=
		`UPDATE journals SET is_important = NOT is_important
		 WHERE id = $1 AND user_id = $2
		 RETURNING is_important
		 `

	var isImportant bool
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&isImportant)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, common.ErrNotFound
		}
		return false, fmt.Errorf("error performing sql request: %w", err)
	}

	return isImportant, nil
}
