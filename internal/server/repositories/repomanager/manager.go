package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/orgvault/internal/dbx"
	"github.com/dmitrijs2005/orgvault/internal/server/repositories/entries"
	"github.com/dmitrijs2005/orgvault/internal/server/repositories/orgs"
	"github.com/dmitrijs2005/orgvault/internal/server/repositories/users"
	"github.com/dmitrijs2005/orgvault/internal/server/repositories/vaults"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Orgs(db dbx.DBTX) orgs.Repository
	Users(db dbx.DBTX) users.Repository
	Vaults(db dbx.DBTX) vaults.Repository
	Entries(db dbx.DBTX) entries.Repository
}
