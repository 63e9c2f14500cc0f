package authz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHasPermissionMatchesTable(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		role Role
		perm Permission
		want bool
	}{
		{RoleSales, PermSalesCreate, true},
		{RoleSales, PermProductsView, true},
		{RoleSales, PermProductsDelete, false},
		{RoleInventory, PermProductsDelete, true},
		{RoleInventory, PermInventoryAdjust, true},
		{RoleInventory, PermFinanceReports, false},
		{RoleFinance, PermFinanceReports, true},
		{RoleFinance, PermUsersManage, false},
	}
	for _, tc := range cases {
		require.Equalf(t, tc.want, reg.HasPermission(tc.role, tc.perm), "%s / %s", tc.role, tc.perm)
	}
}

func TestAdministratorHoldsEveryPermission(t *testing.T) {
	reg := NewRegistry()
	for _, perm := range AllPermissions() {
		require.Truef(t, reg.HasPermission(RoleAdministrator, perm), "administrator missing %s", perm)
	}
}

func TestUnknownRoleFailsClosed(t *testing.T) {
	reg := NewRegistry()
	require.False(t, reg.HasPermission(Role("intern"), PermProductsView))
	require.False(t, reg.HasPermission(Role(""), PermProductsView))
}

func TestPermissionsReturnsCopy(t *testing.T) {
	reg := NewRegistry()
	perms := reg.Permissions(RoleSales)
	require.Len(t, perms, 3)
	perms[0] = PermSystemSettings
	require.False(t, reg.HasPermission(RoleSales, PermSystemSettings))
	require.Nil(t, reg.Permissions(Role("intern")))
}
