package identity

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/meridian-erp/meridian/internal/authz"
	"github.com/meridian-erp/meridian/internal/dispatch"
	"github.com/meridian-erp/meridian/internal/shared"
)

// Ops exposes the role-management workflow and the administrative cache
// invalidation hook as guarded dispatch operations.
type Ops struct {
	service  *Service
	validate *validator.Validate
}

// NewOps constructs the operation set.
func NewOps(service *Service) *Ops {
	return &Ops{service: service, validate: validator.New()}
}

// Register wires the operations into the dispatcher behind the guard. Role
// management requires users.manage; cache administration requires
// system.settings.
func (o *Ops) Register(d *dispatch.Dispatcher, guard *authz.Guard) {
	d.Register("identity.listPrincipals", guard.RequirePermission(authz.PermUsersManage, o.listPrincipals))
	d.Register("identity.assignRole", guard.RequirePermission(authz.PermUsersManage, o.assignRole))
	d.Register("identity.assignRoles", guard.RequirePermission(authz.PermUsersManage, o.assignRoles))
	d.Register("authz.invalidate", guard.RequirePermission(authz.PermSystemSettings, o.invalidate))
	d.Register("authz.invalidateAll", guard.RequirePermission(authz.PermSystemSettings, o.invalidateAll))
}

type principalView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	IsActive bool   `json:"isActive"`
}

func (o *Ops) listPrincipals(ctx context.Context, args ...any) (any, error) {
	principals, err := o.service.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]principalView, len(principals))
	for i, p := range principals {
		views[i] = principalView{ID: p.ID, Name: p.Name, Role: string(p.Role), IsActive: p.IsActive}
	}
	return views, nil
}

type assignRoleParams struct {
	PrincipalID string `json:"principalId" validate:"required"`
	Role        string `json:"role" validate:"required"`
}

func (o *Ops) assignRole(ctx context.Context, args ...any) (any, error) {
	var params assignRoleParams
	if err := o.decode(args, &params); err != nil {
		return nil, err
	}
	caller, _ := authz.PrincipalFromArgs(args)
	if err := o.service.AssignRole(ctx, params.PrincipalID, params.Role, caller); err != nil {
		return nil, err
	}
	return map[string]any{"principalId": params.PrincipalID, "role": params.Role}, nil
}

type assignRolesParams struct {
	Assignments map[string]string `json:"assignments" validate:"required,min=1"`
}

func (o *Ops) assignRoles(ctx context.Context, args ...any) (any, error) {
	var params assignRolesParams
	if err := o.decode(args, &params); err != nil {
		return nil, err
	}
	caller, _ := authz.PrincipalFromArgs(args)
	if err := o.service.AssignRoles(ctx, params.Assignments, caller); err != nil {
		return nil, err
	}
	return map[string]any{"assigned": len(params.Assignments)}, nil
}

type invalidateParams struct {
	PrincipalID string `json:"principalId" validate:"required"`
}

func (o *Ops) invalidate(ctx context.Context, args ...any) (any, error) {
	var params invalidateParams
	if err := o.decode(args, &params); err != nil {
		return nil, err
	}
	if err := o.service.InvalidatePrincipal(ctx, params.PrincipalID); err != nil {
		return nil, err
	}
	return map[string]any{"invalidated": params.PrincipalID}, nil
}

func (o *Ops) invalidateAll(ctx context.Context, args ...any) (any, error) {
	if err := o.service.InvalidateAll(ctx); err != nil {
		return nil, err
	}
	return map[string]any{"invalidated": "all"}, nil
}

// decode reads the operation parameters from the second argument (the first
// carries the caller's identity) and validates them.
func (o *Ops) decode(args []any, target any) error {
	if err := dispatch.DecodeParams(args, 1, target); err != nil {
		return err
	}
	if err := o.validate.Struct(target); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}
	return nil
}
