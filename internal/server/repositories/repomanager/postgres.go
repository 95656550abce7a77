package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/mkravets/linkjournal/internal/dbx"
	"github.com/mkravets/linkjournal/internal/server/migrations"
	"github.com/mkravets/linkjournal/internal/server/repositories/accounts"
	"github.com/mkravets/linkjournal/internal/server/repositories/journals"
	"github.com/mkravets/linkjournal/internal/server/repositories/refreshtokens"
	"github.com/mkravets/linkjournal/internal/server/repositories/topics"
	"github.com/mkravets/linkjournal/internal/server/repositories/users"
)

type PostgresRepositoryManager struct {
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Topics(db dbx.DBTX) topics.Repository {
	return topics.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Journals(db dbx.DBTX) journals.Repository {
	return journals.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}
