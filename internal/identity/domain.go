// Package identity is the persistent principal/role store behind the
// authorization layer, plus the role-management workflow that keeps the role
// cache in sync.
package identity

import (
	"time"

	"github.com/meridian-erp/meridian/internal/authz"
)

// Principal is a caller known to the store.
type Principal struct {
	ID        string
	Name      string
	Role      authz.Role
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoleChange records one assignment for history.
type RoleChange struct {
	PrincipalID string
	FromRole    authz.Role
	ToRole      authz.Role
	ChangedBy   string
	ChangedAt   time.Time
}
