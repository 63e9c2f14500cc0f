package authz

// Registry is the static role to permission-set table. It is built once at
// startup and never mutated, so lookups need no locking.
type Registry struct {
	grants map[Role]map[Permission]struct{}
}

// NewRegistry builds the permission table. The administrator entry is derived
// from AllPermissions rather than listed explicitly; this silently grants any
// future permission to administrators and is kept on purpose.
func NewRegistry() *Registry {
	grants := map[Role][]Permission{
		RoleAdministrator: AllPermissions(),
		RoleSales: {
			PermProductsView,
			PermSalesCreate,
			PermSalesView,
		},
		RoleInventory: {
			PermProductsCreate,
			PermProductsView,
			PermProductsUpdate,
			PermProductsDelete,
			PermInventoryView,
			PermInventoryAdjust,
		},
		RoleFinance: {
			PermProductsView,
			PermSalesView,
			PermFinanceView,
			PermFinanceReports,
		},
	}

	table := make(map[Role]map[Permission]struct{}, len(grants))
	for role, perms := range grants {
		set := make(map[Permission]struct{}, len(perms))
		for _, p := range perms {
			set[p] = struct{}{}
		}
		table[role] = set
	}
	return &Registry{grants: table}
}

// HasPermission reports whether the role holds the permission. A role absent
// from the table yields false, never an error.
func (r *Registry) HasPermission(role Role, perm Permission) bool {
	set, ok := r.grants[role]
	if !ok {
		return false
	}
	_, ok = set[perm]
	return ok
}

// Permissions returns the role's permission set as a slice. Useful for
// admin listings; the returned slice is a copy.
func (r *Registry) Permissions(role Role) []Permission {
	set, ok := r.grants[role]
	if !ok {
		return nil
	}
	perms := make([]Permission, 0, len(set))
	for p := range set {
		perms = append(perms, p)
	}
	return perms
}
