// Package models holds the stored record types for orgs, users, vaults and
// entries. The structs mirror the database columns; request/response DTOs
// live next to the services and handlers that use them.
package models

import "time"

// Org is a tenant. Exactly one org may carry Admin = true: the distinguished
// system-admin org created during setup. Uniqueness is enforced by the setup
// routine and the org service, not by a database constraint.
type Org struct {
	ID        string
	Name      string
	Admin     bool
	CreatedAt time.Time
}
