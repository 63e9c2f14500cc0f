package identity

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meridian-erp/meridian/internal/authz"
	"github.com/meridian-erp/meridian/internal/shared"
)

type memoryRepo struct {
	roles   map[string]authz.Role
	changes []RoleChange
}

func newMemoryRepo(roles map[string]authz.Role) *memoryRepo {
	if roles == nil {
		roles = make(map[string]authz.Role)
	}
	return &memoryRepo{roles: roles}
}

func (r *memoryRepo) LookupRole(ctx context.Context, principalID string) (authz.Role, error) {
	role, ok := r.roles[principalID]
	if !ok {
		return "", authz.ErrUnknownPrincipal
	}
	return role, nil
}

func (r *memoryRepo) ListPrincipals(ctx context.Context) ([]Principal, error) {
	principals := make([]Principal, 0, len(r.roles))
	for id, role := range r.roles {
		principals = append(principals, Principal{ID: id, Role: role, IsActive: true})
	}
	return principals, nil
}

func (r *memoryRepo) AssignRole(ctx context.Context, change RoleChange) error {
	if _, ok := r.roles[change.PrincipalID]; !ok {
		return shared.ErrNotFound
	}
	r.roles[change.PrincipalID] = change.ToRole
	r.changes = append(r.changes, change)
	return nil
}

type fakeInvalidator struct {
	single []string
	all    int
	err    error
}

func (f *fakeInvalidator) Invalidate(ctx context.Context, principalID string) error {
	if f.err != nil {
		return f.err
	}
	f.single = append(f.single, principalID)
	return nil
}

func (f *fakeInvalidator) InvalidateAll(ctx context.Context) error {
	if f.err != nil {
		return f.err
	}
	f.all++
	return nil
}

type fakeQueue struct {
	enqueued int
	err      error
}

func (f *fakeQueue) EnqueueInvalidateAll(ctx context.Context) error {
	if f.err != nil {
		return f.err
	}
	f.enqueued++
	return nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAssignRoleInvalidatesPrincipal(t *testing.T) {
	repo := newMemoryRepo(map[string]authz.Role{"u1": authz.RoleSales})
	inv := &fakeInvalidator{}
	svc := NewService(repo, inv, nil, discard())

	err := svc.AssignRole(context.Background(), "u1", "inventory", "admin")
	require.NoError(t, err)
	require.Equal(t, authz.RoleInventory, repo.roles["u1"])
	require.Equal(t, []string{"u1"}, inv.single)
	require.Len(t, repo.changes, 1)
	require.Equal(t, "admin", repo.changes[0].ChangedBy)
}

func TestAssignRoleRejectsUnknownRole(t *testing.T) {
	repo := newMemoryRepo(map[string]authz.Role{"u1": authz.RoleSales})
	svc := NewService(repo, &fakeInvalidator{}, nil, discard())

	err := svc.AssignRole(context.Background(), "u1", "warlord", "admin")
	require.ErrorIs(t, err, shared.ErrInvalidArgument)
	require.Equal(t, authz.RoleSales, repo.roles["u1"], "invalid role must not be persisted")
}

func TestAssignRoleUnknownPrincipal(t *testing.T) {
	repo := newMemoryRepo(nil)
	inv := &fakeInvalidator{}
	svc := NewService(repo, inv, nil, discard())

	err := svc.AssignRole(context.Background(), "ghost", "sales", "admin")
	require.ErrorIs(t, err, shared.ErrNotFound)
	require.Empty(t, inv.single, "failed assignment must not invalidate")
}

func TestAssignRolesEnqueuesSingleFlush(t *testing.T) {
	repo := newMemoryRepo(map[string]authz.Role{"u1": authz.RoleSales, "u2": authz.RoleSales})
	inv := &fakeInvalidator{}
	queue := &fakeQueue{}
	svc := NewService(repo, inv, queue, discard())

	err := svc.AssignRoles(context.Background(), map[string]string{
		"u1": "finance",
		"u2": "inventory",
	}, "admin")
	require.NoError(t, err)
	require.Equal(t, 1, queue.enqueued)
	require.Zero(t, inv.all, "queued flush replaces the direct one")
}

func TestAssignRolesFallsBackWhenQueueFails(t *testing.T) {
	repo := newMemoryRepo(map[string]authz.Role{"u1": authz.RoleSales})
	inv := &fakeInvalidator{}
	queue := &fakeQueue{err: errors.New("queue down")}
	svc := NewService(repo, inv, queue, discard())

	err := svc.AssignRoles(context.Background(), map[string]string{"u1": "finance"}, "admin")
	require.NoError(t, err)
	require.Equal(t, 1, inv.all)
}

func TestInvalidatePrincipalRequiresID(t *testing.T) {
	svc := NewService(newMemoryRepo(nil), &fakeInvalidator{}, nil, discard())
	err := svc.InvalidatePrincipal(context.Background(), "")
	require.ErrorIs(t, err, shared.ErrInvalidArgument)
}
