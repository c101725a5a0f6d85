package web

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/orgvault/internal/rbac"
)

// Router builds the full route tree. Layout:
//
//	POST /auth/token                                 login (public)
//	GET  /health/{live,ready}                        health (public)
//	GET  /profile, /profile/permissions              current actor
//	POST /profile/password                           change own password
//	     /orgs, /orgs/{org_id}                       org CRUD
//	     /orgs/{org_id}/users/{user_id}...           user CRUD
//	     /orgs/{org_id}/vaults/{vault_id}            vault CRUD
//	     /vaults/{vault_id}/entries/{entry_id}...    entry CRUD
//
// Every authenticated route passes actor extraction and require-auth; each
// nested resource passes its gate before the handler runs.
func (s *Server) Router() *mux.Router {
	root := mux.NewRouter()

	root.HandleFunc("/health/live", s.handleLive).Methods(http.MethodGet)
	root.HandleFunc("/health/ready", s.handleReady).Methods(http.MethodGet)
	root.HandleFunc("/auth/token", s.handleLogin).Methods(http.MethodPost)

	api := root.NewRoute().Subrouter()
	api.Use(s.actorMiddleware, s.requireAuth)

	api.HandleFunc("/profile", s.handleProfile).Methods(http.MethodGet)
	api.HandleFunc("/profile/permissions", s.handleProfilePermissions).Methods(http.MethodGet)
	api.HandleFunc("/profile/password", s.handleChangePassword).Methods(http.MethodPost)

	api.Handle("/orgs",
		s.requirePermissions(rbac.PermOrgsList)(http.HandlerFunc(s.handleListOrgs))).
		Methods(http.MethodGet)
	api.Handle("/orgs",
		s.requirePermissions(rbac.PermOrgsCreate)(http.HandlerFunc(s.handleCreateOrg))).
		Methods(http.MethodPost)

	org := api.PathPrefix("/orgs/{org_id}").Subrouter()
	org.Use(s.orgGate)

	org.HandleFunc("", s.handleGetOrg).Methods(http.MethodGet)
	org.Handle("",
		s.requirePermissions(rbac.PermOrgsDelete)(http.HandlerFunc(s.handleDeleteOrg))).
		Methods(http.MethodDelete)

	org.Handle("/users",
		s.requirePermissions(rbac.PermUsersList)(http.HandlerFunc(s.handleListUsers))).
		Methods(http.MethodGet)
	org.Handle("/users",
		s.requirePermissions(rbac.PermUsersCreate)(http.HandlerFunc(s.handleCreateUser))).
		Methods(http.MethodPost)

	user := org.PathPrefix("/users/{user_id}").Subrouter()
	user.Use(s.userGate)

	user.HandleFunc("", s.handleGetUser).Methods(http.MethodGet)
	user.Handle("",
		s.requirePermissions(rbac.PermUsersDelete)(http.HandlerFunc(s.handleDeleteUser))).
		Methods(http.MethodDelete)
	user.Handle("/status",
		s.requirePermissions(rbac.PermUsersEdit)(http.HandlerFunc(s.handleUpdateUserStatus))).
		Methods(http.MethodPut)
	user.Handle("/roles",
		s.requirePermissions(rbac.PermUsersEdit)(http.HandlerFunc(s.handleUpdateUserRoles))).
		Methods(http.MethodPut)
	user.Handle("/password",
		s.requirePermissions(rbac.PermUsersEdit)(http.HandlerFunc(s.handleSetUserPassword))).
		Methods(http.MethodPut)

	org.Handle("/vaults",
		s.requireVaultScope(s.requirePermissions(rbac.PermVaultsList)(http.HandlerFunc(s.handleListVaults)))).
		Methods(http.MethodGet)
	org.Handle("/vaults",
		s.requireVaultScope(s.requirePermissions(rbac.PermVaultsCreate)(http.HandlerFunc(s.handleCreateVault)))).
		Methods(http.MethodPost)

	vault := org.PathPrefix("/vaults/{vault_id}").Subrouter()
	vault.Use(s.vaultGate)

	vault.HandleFunc("", s.handleGetVault).Methods(http.MethodGet)
	vault.Handle("",
		s.requirePermissions(rbac.PermVaultsDelete)(http.HandlerFunc(s.handleDeleteVault))).
		Methods(http.MethodDelete)

	entries := api.PathPrefix("/vaults/{vault_id}/entries").Subrouter()
	entries.Use(s.entryGate)

	entries.HandleFunc("", s.handleListEntries).Methods(http.MethodGet)
	entries.Handle("",
		s.requirePermissions(rbac.PermEntriesCreate)(http.HandlerFunc(s.handleCreateEntry))).
		Methods(http.MethodPost)
	entries.HandleFunc("/{entry_id}", s.handleGetEntry).Methods(http.MethodGet)
	entries.Handle("/{entry_id}",
		s.requirePermissions(rbac.PermEntriesEdit)(http.HandlerFunc(s.handleUpdateEntry))).
		Methods(http.MethodPut)
	entries.Handle("/{entry_id}/status",
		s.requirePermissions(rbac.PermEntriesEdit)(http.HandlerFunc(s.handleUpdateEntryStatus))).
		Methods(http.MethodPut)
	entries.Handle("/{entry_id}",
		s.requirePermissions(rbac.PermEntriesDelete)(http.HandlerFunc(s.handleDeleteEntry))).
		Methods(http.MethodDelete)

	return root
}
