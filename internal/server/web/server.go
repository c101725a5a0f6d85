package web

import (
	"database/sql"

	"github.com/dmitrijs2005/orgvault/internal/logging"
	"github.com/dmitrijs2005/orgvault/internal/server/auth"
	"github.com/dmitrijs2005/orgvault/internal/server/services"
)

// Server bundles the handlers' dependencies. Build one with NewServer and
// mount it via Router().
type Server struct {
	logger   logging.Logger
	resolver *auth.Resolver
	orgs     *services.OrgService
	users    *services.UserService
	vaults   *services.VaultService
	entries  *services.EntryService
	db       *sql.DB
}

func NewServer(
	logger logging.Logger,
	resolver *auth.Resolver,
	orgs *services.OrgService,
	users *services.UserService,
	vaults *services.VaultService,
	entries *services.EntryService,
	db *sql.DB,
) *Server {
	return &Server{
		logger:   logger,
		resolver: resolver,
		orgs:     orgs,
		users:    users,
		vaults:   vaults,
		entries:  entries,
		db:       db,
	}
}
