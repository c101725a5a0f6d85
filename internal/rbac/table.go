package rbac

import "sort"

// RolePermissions returns the fixed permission set for a role.
//
// SystemAdmin holds every org, user and vault management permission but no
// entry permissions at all: cross-org administrators manage tenant lifecycle,
// only within-org roles touch entry secrets.
func RolePermissions(role Role) []Permission {
	switch role {
	case RoleSystemAdmin:
		return []Permission{
			PermOrgsCreate, PermOrgsEdit, PermOrgsDelete,
			PermOrgsList, PermOrgsView, PermOrgsManage,
			PermUsersCreate, PermUsersEdit, PermUsersDelete,
			PermUsersList, PermUsersView, PermUsersManage,
			PermVaultsCreate, PermVaultsEdit, PermVaultsDelete,
			PermVaultsList, PermVaultsView, PermVaultsManage,
		}
	case RoleAdmin:
		return []Permission{
			PermOrgsList, PermOrgsView,
			PermVaultsList, PermVaultsView,
			PermUsersList, PermUsersView,
			PermEntriesCreate, PermEntriesEdit, PermEntriesDelete,
			PermEntriesList, PermEntriesView, PermEntriesManage,
		}
	case RoleEditor:
		return []Permission{
			PermOrgsList, PermOrgsView,
			PermVaultsList, PermVaultsView,
			PermEntriesCreate, PermEntriesList, PermEntriesView,
		}
	case RoleViewer:
		return []Permission{
			PermOrgsList, PermOrgsView,
			PermVaultsList, PermVaultsView,
			PermEntriesList, PermEntriesView,
		}
	}
	return nil
}

// RolesPermissions returns the union of permissions for the given roles,
// deduplicated and sorted by string form so derived permission lists are
// deterministic regardless of role order.
func RolesPermissions(roles []Role) []Permission {
	seen := make(map[Permission]struct{})
	for _, role := range roles {
		for _, perm := range RolePermissions(role) {
			seen[perm] = struct{}{}
		}
	}

	perms := make([]Permission, 0, len(seen))
	for perm := range seen {
		perms = append(perms, perm)
	}
	sort.Slice(perms, func(i, j int) bool { return perms[i] < perms[j] })
	return perms
}
