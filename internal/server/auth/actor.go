package auth

import (
	"slices"
	"strings"

	"github.com/dmitrijs2005/orgvault/internal/rbac"
	"github.com/dmitrijs2005/orgvault/internal/server/models"
)

// Capability tags carried in a token's scope.
const (
	ScopeTagAuth  = "auth"
	ScopeTagVault = "vault"
)

// ScopeAuthVault is the scope issued on login.
const ScopeAuthVault = ScopeTagAuth + " " + ScopeTagVault

// Scope is a set of capability tags parsed from the space-delimited scope
// string. Membership is exact tag equality: scope "vaulted" does not grant
// the "vault" tag.
type Scope map[string]struct{}

// ParseScope tokenizes a scope string on whitespace.
func ParseScope(s string) Scope {
	scope := make(Scope)
	for _, tag := range strings.Fields(s) {
		scope[tag] = struct{}{}
	}
	return scope
}

// Has reports whether the tag is present in the scope.
func (s Scope) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}

// ActorPayload is the ephemeral signing payload: what gets signed into the
// token. It is not the full Actor.
type ActorPayload struct {
	UserID string
	OrgID  string
	Scope  string
}

// Actor is the resolved, request-scoped principal. It is constructed fresh
// per request and never persisted; permissions are derived from the user's
// stored roles on every construction so that role changes apply on the very
// next request.
type Actor struct {
	UserID      string
	OrgID       string
	Scope       Scope
	User        *models.User
	Roles       []rbac.Role
	Permissions []rbac.Permission
}

// NewActor builds an Actor from a verified payload and the freshly loaded
// user record. The permission set is deduplicated and sorted.
func NewActor(payload *ActorPayload, user *models.User) (*Actor, error) {
	roles, err := rbac.SplitRoles(user.Roles)
	if err != nil {
		return nil, err
	}

	return &Actor{
		UserID:      user.ID,
		OrgID:       payload.OrgID,
		Scope:       ParseScope(payload.Scope),
		User:        user,
		Roles:       roles,
		Permissions: rbac.RolesPermissions(roles),
	}, nil
}

// EmptyActor represents an unauthenticated caller: unknown identity, empty
// scope, no permissions. Code paths test scope and permission membership on
// it instead of special-casing a missing actor.
func EmptyActor() *Actor {
	return &Actor{
		UserID:      "unknown",
		OrgID:       "unknown",
		Scope:       Scope{},
		User:        nil,
		Roles:       nil,
		Permissions: nil,
	}
}

// HasScope reports whether the actor's scope carries the tag.
func (a *Actor) HasScope(tag string) bool {
	return a.Scope.Has(tag)
}

func (a *Actor) HasAuthScope() bool {
	return a.HasScope(ScopeTagAuth)
}

func (a *Actor) HasVaultScope() bool {
	return a.HasScope(ScopeTagVault)
}

// HasPermissions reports whether the actor holds every one of the required
// permissions. Checks are conjunctive; routes accepting alternatives must
// spell that out themselves.
func (a *Actor) HasPermissions(required []rbac.Permission) bool {
	for _, perm := range required {
		if !slices.Contains(a.Permissions, perm) {
			return false
		}
	}
	return true
}

// IsSystemAdmin reports whether the actor carries the SystemAdmin role.
func (a *Actor) IsSystemAdmin() bool {
	return slices.Contains(a.Roles, rbac.RoleSystemAdmin)
}
