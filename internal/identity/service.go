package identity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/meridian-erp/meridian/internal/authz"
	"github.com/meridian-erp/meridian/internal/shared"
)

// Invalidator propagates cache invalidation to every process after a role
// change. authz.Broadcaster satisfies it.
type Invalidator interface {
	Invalidate(ctx context.Context, principalID string) error
	InvalidateAll(ctx context.Context) error
}

// TaskQueue enqueues deferred invalidation work for bulk role changes.
type TaskQueue interface {
	EnqueueInvalidateAll(ctx context.Context) error
}

// Service wraps the role-management workflow. Every successful role change
// triggers an immediate cache invalidation so the new role takes effect
// without waiting out the TTL.
type Service struct {
	repo        Repository
	invalidator Invalidator
	queue       TaskQueue
	logger      *slog.Logger
}

// NewService constructs a Service. queue may be nil when no worker is
// deployed; bulk changes then fall back to a direct full invalidation.
func NewService(repo Repository, invalidator Invalidator, queue TaskQueue, logger *slog.Logger) *Service {
	return &Service{repo: repo, invalidator: invalidator, queue: queue, logger: logger}
}

// List returns every principal known to the store.
func (s *Service) List(ctx context.Context) ([]Principal, error) {
	return s.repo.ListPrincipals(ctx)
}

// AssignRole moves a principal to a new role and invalidates its cached
// entry everywhere.
func (s *Service) AssignRole(ctx context.Context, principalID, roleName, changedBy string) error {
	role, ok := authz.ParseRole(roleName)
	if !ok {
		return fmt.Errorf("%w: role %q", shared.ErrInvalidArgument, roleName)
	}
	if principalID == "" {
		return fmt.Errorf("%w: principal id required", shared.ErrInvalidArgument)
	}

	if err := s.repo.AssignRole(ctx, RoleChange{
		PrincipalID: principalID,
		ToRole:      role,
		ChangedBy:   changedBy,
	}); err != nil {
		return err
	}
	return s.InvalidatePrincipal(ctx, principalID)
}

// AssignRoles applies a batch of assignments, then schedules one full cache
// flush instead of per-principal invalidations.
func (s *Service) AssignRoles(ctx context.Context, assignments map[string]string, changedBy string) error {
	for principalID, roleName := range assignments {
		role, ok := authz.ParseRole(roleName)
		if !ok {
			return fmt.Errorf("%w: role %q", shared.ErrInvalidArgument, roleName)
		}
		if err := s.repo.AssignRole(ctx, RoleChange{
			PrincipalID: principalID,
			ToRole:      role,
			ChangedBy:   changedBy,
		}); err != nil {
			return err
		}
	}

	if s.queue != nil {
		if err := s.queue.EnqueueInvalidateAll(ctx); err == nil {
			return nil
		} else if s.logger != nil {
			s.logger.Warn("enqueue invalidate-all failed, flushing directly", slog.Any("error", err))
		}
	}
	return s.InvalidateAll(ctx)
}

// InvalidatePrincipal drops one principal's cached role in every process.
// This is the administrative invalidation hook for a single role change.
func (s *Service) InvalidatePrincipal(ctx context.Context, principalID string) error {
	if principalID == "" {
		return fmt.Errorf("%w: principal id required", shared.ErrInvalidArgument)
	}
	if err := s.invalidator.Invalidate(ctx, principalID); err != nil {
		return fmt.Errorf("identity: invalidate %s: %w", principalID, err)
	}
	return nil
}

// InvalidateAll flushes every cached role. Used after bulk role changes or an
// administrative reset.
func (s *Service) InvalidateAll(ctx context.Context) error {
	if err := s.invalidator.InvalidateAll(ctx); err != nil {
		return fmt.Errorf("identity: invalidate all: %w", err)
	}
	return nil
}
