// Package web is the HTTP surface: gorilla/mux router, the authorization
// middleware chain and the JSON handlers. Handlers never re-check tenancy;
// by the time one runs, the middleware has resolved and attached every
// path resource and refused anything cross-org.
package web

import (
	"context"

	"github.com/dmitrijs2005/orgvault/internal/server/auth"
	"github.com/dmitrijs2005/orgvault/internal/server/models"
)

type contextKey string

const (
	actorKey contextKey = "actor"
	orgKey   contextKey = "org"
	userKey  contextKey = "user"
	vaultKey contextKey = "vault"
	entryKey contextKey = "entry"
)

func withActor(ctx context.Context, actor *auth.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// actorFromContext returns the request actor. Requests that never passed the
// actor middleware get the empty actor, not nil.
func actorFromContext(ctx context.Context) *auth.Actor {
	if actor, ok := ctx.Value(actorKey).(*auth.Actor); ok {
		return actor
	}
	return auth.EmptyActor()
}

func withOrg(ctx context.Context, org *models.Org) context.Context {
	return context.WithValue(ctx, orgKey, org)
}

func orgFromContext(ctx context.Context) *models.Org {
	org, _ := ctx.Value(orgKey).(*models.Org)
	return org
}

func withUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func userFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

func withVault(ctx context.Context, vault *models.Vault) context.Context {
	return context.WithValue(ctx, vaultKey, vault)
}

func vaultFromContext(ctx context.Context) *models.Vault {
	vault, _ := ctx.Value(vaultKey).(*models.Vault)
	return vault
}

func withEntry(ctx context.Context, entry *models.Entry) context.Context {
	return context.WithValue(ctx, entryKey, entry)
}

func entryFromContext(ctx context.Context) *models.Entry {
	entry, _ := ctx.Value(entryKey).(*models.Entry)
	return entry
}
