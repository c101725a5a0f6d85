// Package rbac holds the closed role and permission catalog and the static
// role-to-permission table. The table is fixed at build time; it is not a
// database-backed configuration, so permission changes for a role take effect
// on the next request after a redeploy, and role changes for a user take
// effect on the user's next request.
package rbac

import "strings"

// Role is one of a fixed set of role names. Roles are persisted only by their
// string name.
type Role string

const (
	RoleSystemAdmin Role = "SystemAdmin"
	RoleAdmin       Role = "Admin"
	RoleEditor      Role = "Editor"
	RoleViewer      Role = "Viewer"
)

// InvalidRolesError lists every unrecognized role name in a ToRoles call,
// not just the first one.
type InvalidRolesError struct {
	Roles []string
}

func (e *InvalidRolesError) Error() string {
	return "invalid roles: " + strings.Join(e.Roles, ", ")
}

// ParseRole maps a single name to a Role.
func ParseRole(name string) (Role, bool) {
	switch Role(name) {
	case RoleSystemAdmin, RoleAdmin, RoleEditor, RoleViewer:
		return Role(name), true
	}
	return "", false
}

// ToRoles maps each name to a Role, preserving input order. If any names are
// unrecognized it fails with an InvalidRolesError listing all of them.
func ToRoles(names []string) ([]Role, error) {
	roles := make([]Role, 0, len(names))
	var bad []string
	for _, name := range names {
		role, ok := ParseRole(name)
		if !ok {
			bad = append(bad, name)
			continue
		}
		roles = append(roles, role)
	}
	if len(bad) > 0 {
		return nil, &InvalidRolesError{Roles: bad}
	}
	return roles, nil
}

// SplitRoles parses a comma-joined role list as stored on a user record.
func SplitRoles(joined string) ([]Role, error) {
	return ToRoles(strings.Split(joined, ","))
}

// JoinRoles renders roles back to the stored comma-joined form.
func JoinRoles(roles []Role) string {
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = string(role)
	}
	return strings.Join(names, ",")
}
