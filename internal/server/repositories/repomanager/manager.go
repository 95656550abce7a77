// Package repomanager bundles the per-table repositories behind one
// factory so services depend on a single seam instead of five
// constructors.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/mkravets/linkjournal/internal/dbx"
	"github.com/mkravets/linkjournal/internal/server/repositories/accounts"
	"github.com/mkravets/linkjournal/internal/server/repositories/journals"
	"github.com/mkravets/linkjournal/internal/server/repositories/refreshtokens"
	"github.com/mkravets/linkjournal/internal/server/repositories/topics"
	"github.com/mkravets/linkjournal/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Topics(db dbx.DBTX) topics.Repository
	Journals(db dbx.DBTX) journals.Repository
	Accounts(db dbx.DBTX) accounts.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
