// Package authz gates privileged operations behind role-based permission
// checks. It maps an already-asserted principal identifier to a role through
// a TTL-bounded cache backed by the identity store, then decides against a
// static role/permission table. Authentication is out of scope; the dispatch
// layer asserts who the caller is.
package authz

import (
	"errors"
	"fmt"
)

// Role is a named job function granting a fixed set of permissions.
type Role string

// Known roles. The set is closed at compile time.
const (
	RoleAdministrator Role = "administrator"
	RoleSales         Role = "sales"
	RoleInventory     Role = "inventory"
	RoleFinance       Role = "finance"
)

// Permission is a single fine-grained capability gating one operation.
type Permission string

// Known permissions. The set is closed at compile time; AllPermissions must
// list every constant declared here.
const (
	PermProductsCreate Permission = "products.create"
	PermProductsView   Permission = "products.view"
	PermProductsUpdate Permission = "products.update"
	PermProductsDelete Permission = "products.delete"

	PermSalesCreate Permission = "sales.create"
	PermSalesView   Permission = "sales.view"

	PermInventoryView   Permission = "inventory.view"
	PermInventoryAdjust Permission = "inventory.adjust"

	PermFinanceView    Permission = "finance.view"
	PermFinanceReports Permission = "finance.reports"

	PermUsersManage    Permission = "users.manage"
	PermSystemSettings Permission = "system.settings"
)

// AllPermissions returns the full permission enumeration. The administrator
// role set is derived from this list, so a permission added above is granted
// to administrators without a table change.
func AllPermissions() []Permission {
	return []Permission{
		PermProductsCreate,
		PermProductsView,
		PermProductsUpdate,
		PermProductsDelete,
		PermSalesCreate,
		PermSalesView,
		PermInventoryView,
		PermInventoryAdjust,
		PermFinanceView,
		PermFinanceReports,
		PermUsersManage,
		PermSystemSettings,
	}
}

// ParseRole validates a raw role name against the closed enumeration.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleAdministrator, RoleSales, RoleInventory, RoleFinance:
		return Role(raw), true
	}
	return "", false
}

var (
	// ErrUnauthenticated indicates that no principal identifier could be
	// extracted from the call arguments.
	ErrUnauthenticated = errors.New("authz: unauthenticated")
	// ErrUnknownPrincipal indicates that the principal does not resolve to a
	// role in the identity store.
	ErrUnknownPrincipal = errors.New("authz: unknown principal")
	// ErrPermissionDenied indicates that the resolved role lacks the required
	// permission.
	ErrPermissionDenied = errors.New("authz: permission denied")
	// ErrStoreUnavailable indicates that the identity store was unreachable
	// or errored. Callers may retry; the other failures are durable until
	// authorization state changes.
	ErrStoreUnavailable = errors.New("authz: identity store unavailable")
)

// DeniedError carries the context of a denial so an external audit sink can
// record principal, role and permission. It matches ErrPermissionDenied under
// errors.Is.
type DeniedError struct {
	Principal  string
	Role       Role
	Permission Permission
}

// Error implements the error interface.
func (e *DeniedError) Error() string {
	return fmt.Sprintf("authz: role %s denied permission %s", e.Role, e.Permission)
}

// Unwrap exposes the sentinel for errors.Is.
func (e *DeniedError) Unwrap() error {
	return ErrPermissionDenied
}
