package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

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

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (firebase_uid, email, display_name, profile_picture)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.FirebaseUID, user.Email, user.DisplayName, user.ProfilePicture).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	query :=
		`SELECT id, firebase_uid, email, display_name, profile_picture, created_at FROM users
		 WHERE firebase_uid = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, uid).
		Scan(&user.ID, &user.FirebaseUID, &user.Email, &user.DisplayName, &user.ProfilePicture, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) UpdateProfilePicture(ctx context.Context, uid, pictureURL string) error {
	query :=
		`UPDATE users SET profile_picture = $2
		 WHERE firebase_uid = $1
		 `

	res, err := r.db.ExecContext(ctx, query, uid, pictureURL)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}
