package rbac

import "strings"

// Permission is one of a fixed set of resource-action pairs.
type Permission string

const (
	PermOrgsCreate Permission = "orgs.create"
	PermOrgsEdit   Permission = "orgs.edit"
	PermOrgsDelete Permission = "orgs.delete"
	PermOrgsList   Permission = "orgs.list"
	PermOrgsView   Permission = "orgs.view"
	PermOrgsManage Permission = "orgs.manage"

	PermUsersCreate Permission = "users.create"
	PermUsersEdit   Permission = "users.edit"
	PermUsersDelete Permission = "users.delete"
	PermUsersList   Permission = "users.list"
	PermUsersView   Permission = "users.view"
	PermUsersManage Permission = "users.manage"

	PermVaultsCreate Permission = "vaults.create"
	PermVaultsEdit   Permission = "vaults.edit"
	PermVaultsDelete Permission = "vaults.delete"
	PermVaultsList   Permission = "vaults.list"
	PermVaultsView   Permission = "vaults.view"
	PermVaultsManage Permission = "vaults.manage"

	PermEntriesCreate Permission = "entries.create"
	PermEntriesEdit   Permission = "entries.edit"
	PermEntriesDelete Permission = "entries.delete"
	PermEntriesList   Permission = "entries.list"
	PermEntriesView   Permission = "entries.view"
	PermEntriesManage Permission = "entries.manage"
)

var allPermissions = map[Permission]struct{}{
	PermOrgsCreate: {}, PermOrgsEdit: {}, PermOrgsDelete: {},
	PermOrgsList: {}, PermOrgsView: {}, PermOrgsManage: {},
	PermUsersCreate: {}, PermUsersEdit: {}, PermUsersDelete: {},
	PermUsersList: {}, PermUsersView: {}, PermUsersManage: {},
	PermVaultsCreate: {}, PermVaultsEdit: {}, PermVaultsDelete: {},
	PermVaultsList: {}, PermVaultsView: {}, PermVaultsManage: {},
	PermEntriesCreate: {}, PermEntriesEdit: {}, PermEntriesDelete: {},
	PermEntriesList: {}, PermEntriesView: {}, PermEntriesManage: {},
}

// InvalidPermissionsError lists every unrecognized permission name in a
// ToPermissions call.
type InvalidPermissionsError struct {
	Permissions []string
}

func (e *InvalidPermissionsError) Error() string {
	return "invalid permissions: " + strings.Join(e.Permissions, ", ")
}

// ParsePermission maps a single name to a Permission.
func ParsePermission(name string) (Permission, bool) {
	_, ok := allPermissions[Permission(name)]
	return Permission(name), ok
}

// ToPermissions maps each name to a Permission, preserving input order. If any
// names are unrecognized it fails with an InvalidPermissionsError listing all
// of them.
func ToPermissions(names []string) ([]Permission, error) {
	perms := make([]Permission, 0, len(names))
	var bad []string
	for _, name := range names {
		perm, ok := ParsePermission(name)
		if !ok {
			bad = append(bad, name)
			continue
		}
		perms = append(perms, perm)
	}
	if len(bad) > 0 {
		return nil, &InvalidPermissionsError{Permissions: bad}
	}
	return perms, nil
}
