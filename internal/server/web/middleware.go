package web

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/orgvault/internal/common"
	"github.com/dmitrijs2005/orgvault/internal/rbac"
	"github.com/dmitrijs2005/orgvault/internal/server/auth"
)

// actorMiddleware resolves the Authorization header into an Actor. A missing
// header yields the empty actor so downstream checks work uniformly; a
// malformed header or a token that fails resolution is refused here.
func (s *Server) actorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r.WithContext(withActor(r.Context(), auth.EmptyActor())))
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			s.writeError(w, r, common.ErrorInvalidAuthToken)
			return
		}

		actor, err := s.resolver.AuthenticateToken(r.Context(), parts[1])
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(withActor(r.Context(), actor)))
	})
}

// requireAuth refuses actors without the auth capability tag.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !actorFromContext(r.Context()).HasAuthScope() {
			s.writeError(w, r, common.ErrorInsufficientAuthScope)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireVaultScope refuses actors without the vault capability tag. Routes
// under a gated vault get this from the gate; collection routes need it
// separately.
func (s *Server) requireVaultScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !actorFromContext(r.Context()).HasVaultScope() {
			s.writeError(w, r, common.ErrorInsufficientVaultScope)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requirePermissions refuses actors lacking any of the given permissions.
// Used per route on top of the resource gates.
func (s *Server) requirePermissions(perms ...rbac.Permission) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !actorFromContext(r.Context()).HasPermissions(perms) {
				s.writeError(w, r, common.ErrorForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// orgGate resolves {org_id}, enforces tenancy and attaches the org.
//
// A cross-tenant id answers 404, exactly like an id that does not exist:
// a caller probing another org's ids learns nothing. System admins may
// cross org boundaries here.
func (s *Server) orgGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := actorFromContext(r.Context())

		org, err := s.orgs.Get(r.Context(), mux.Vars(r)["org_id"])
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		if org.ID != actor.OrgID && !actor.IsSystemAdmin() {
			s.writeError(w, r, common.ErrorNotFound)
			return
		}

		if !actor.HasPermissions([]rbac.Permission{rbac.PermOrgsView}) {
			s.writeError(w, r, common.ErrorForbidden)
			return
		}

		next.ServeHTTP(w, r.WithContext(withOrg(r.Context(), org)))
	})
}

// userGate resolves {user_id} under an already-gated org.
func (s *Server) userGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := actorFromContext(r.Context())
		org := orgFromContext(r.Context())

		user, err := s.users.Get(r.Context(), mux.Vars(r)["user_id"])
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		if user.OrgID != org.ID {
			s.writeError(w, r, common.ErrorNotFound)
			return
		}

		if !actor.HasPermissions([]rbac.Permission{rbac.PermUsersList, rbac.PermUsersView}) {
			s.writeError(w, r, common.ErrorForbidden)
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

// vaultGate resolves {vault_id} under an already-gated org. Vault access
// additionally needs the vault capability tag.
func (s *Server) vaultGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := actorFromContext(r.Context())
		org := orgFromContext(r.Context())

		if !actor.HasVaultScope() {
			s.writeError(w, r, common.ErrorInsufficientVaultScope)
			return
		}

		vault, err := s.vaults.Get(r.Context(), mux.Vars(r)["vault_id"])
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		if vault.OrgID != org.ID {
			s.writeError(w, r, common.ErrorNotFound)
			return
		}

		if !actor.HasPermissions([]rbac.Permission{rbac.PermVaultsList, rbac.PermVaultsView}) {
			s.writeError(w, r, common.ErrorForbidden)
			return
		}

		next.ServeHTTP(w, r.WithContext(withVault(r.Context(), vault)))
	})
}

// entryGate resolves {vault_id} for entry routes and enforces the strictest
// rules in the chain: the caller must belong to the vault's org with no
// system-admin bypass, and system admins are refused outright even inside
// their own org. Secrets are readable only by the org that owns them.
func (s *Server) entryGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := actorFromContext(r.Context())

		if !actor.HasVaultScope() {
			s.writeError(w, r, common.ErrorInsufficientVaultScope)
			return
		}

		vault, err := s.vaults.Get(r.Context(), mux.Vars(r)["vault_id"])
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		if vault.OrgID != actor.OrgID {
			s.writeError(w, r, common.ErrorNotFound)
			return
		}

		if actor.IsSystemAdmin() {
			s.writeError(w, r, common.ErrorForbidden)
			return
		}

		if !actor.HasPermissions([]rbac.Permission{rbac.PermEntriesList, rbac.PermEntriesView}) {
			s.writeError(w, r, common.ErrorForbidden)
			return
		}

		ctx := withVault(r.Context(), vault)

		if entryID, ok := mux.Vars(r)["entry_id"]; ok {
			entry, err := s.entries.GetRecord(r.Context(), entryID)
			if err != nil {
				s.writeError(w, r, err)
				return
			}
			if entry.VaultID != vault.ID {
				s.writeError(w, r, common.ErrorNotFound)
				return
			}
			ctx = withEntry(ctx, entry)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
