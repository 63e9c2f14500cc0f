package authz

import (
	"context"
	"errors"
	"log/slog"
)

// HandlerFunc is the shape of a dispatchable operation handler: an ordered,
// loosely typed argument list in, a result or error out.
type HandlerFunc func(ctx context.Context, args ...any) (any, error)

// Denial describes a rejected call for audit purposes.
type Denial struct {
	Principal  string
	Role       Role
	Permission Permission
	Reason     string
}

// AuditRecorder receives every denial the guard produces. Recording failures
// must not affect the authorization decision.
type AuditRecorder interface {
	RecordDenial(ctx context.Context, d Denial)
}

// DecisionMetrics counts guard outcomes.
type DecisionMetrics interface {
	Decision(outcome string)
}

// Guard wraps operation handlers with authorization checks. It composes the
// registry and resolver and keeps no per-call state, so a single Guard is
// shared by all concurrent calls.
type Guard struct {
	Registry *Registry
	Resolver *Resolver
	Logger   *slog.Logger
	Audit    AuditRecorder
	Metrics  DecisionMetrics
}

// RequirePermission wraps next so it only runs for principals whose role
// holds perm. The decision sequence is extract, resolve, check, delegate;
// any failed step rejects the call before next executes. On success next
// runs exactly once with the original arguments and its outcome passes
// through unchanged.
func (g *Guard) RequirePermission(perm Permission, next HandlerFunc) HandlerFunc {
	return g.guard(perm, true, next)
}

// RequireAuthenticated wraps next so it runs for any principal that resolves
// to a role; no specific permission is demanded.
func (g *Guard) RequireAuthenticated(next HandlerFunc) HandlerFunc {
	return g.guard("", false, next)
}

func (g *Guard) guard(perm Permission, checkPerm bool, next HandlerFunc) HandlerFunc {
	return func(ctx context.Context, args ...any) (any, error) {
		principalID, ok := PrincipalFromArgs(args)
		if !ok {
			g.reject(ctx, Denial{Permission: perm, Reason: "unauthenticated"})
			return nil, ErrUnauthenticated
		}

		role, err := g.Resolver.Resolve(ctx, principalID)
		if err != nil {
			switch {
			case errors.Is(err, ErrUnknownPrincipal):
				g.reject(ctx, Denial{Principal: principalID, Permission: perm, Reason: "unknown_principal"})
				return nil, ErrUnknownPrincipal
			default:
				g.count("store_unavailable")
				return nil, err
			}
		}

		if checkPerm && !g.Registry.HasPermission(role, perm) {
			g.reject(ctx, Denial{Principal: principalID, Role: role, Permission: perm, Reason: "denied"})
			return nil, &DeniedError{Principal: principalID, Role: role, Permission: perm}
		}

		g.count("granted")
		return next(ctx, args...)
	}
}

func (g *Guard) reject(ctx context.Context, d Denial) {
	g.count(d.Reason)
	if g.Logger != nil {
		g.Logger.Warn("call rejected",
			slog.String("principal", d.Principal),
			slog.String("role", string(d.Role)),
			slog.String("permission", string(d.Permission)),
			slog.String("reason", d.Reason))
	}
	if g.Audit != nil {
		g.Audit.RecordDenial(ctx, d)
	}
}

func (g *Guard) count(outcome string) {
	if g.Metrics != nil {
		g.Metrics.Decision(outcome)
	}
}
