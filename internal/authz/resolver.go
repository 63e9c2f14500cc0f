package authz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// RoleStore is the persistent identity/role collaborator queried on cache
// miss. Implementations signal an unknown principal with ErrUnknownPrincipal;
// any other error is treated as a transient store failure.
type RoleStore interface {
	LookupRole(ctx context.Context, principalID string) (Role, error)
}

// DefaultStoreTimeout bounds a single identity store lookup so a slow store
// cannot block a call indefinitely.
const DefaultStoreTimeout = 3 * time.Second

// Resolver maps principal identifiers to roles, consulting the cache first
// and the store on miss. It holds no per-call state; a slow lookup for one
// principal never blocks checks for others.
type Resolver struct {
	cache        *RoleCache
	store        RoleStore
	logger       *slog.Logger
	storeTimeout time.Duration
	metrics      CacheMetrics
}

// CacheMetrics counts cache outcomes observed by the resolver.
type CacheMetrics interface {
	CacheEvent(event string)
}

// ResolverOption customises a Resolver.
type ResolverOption func(*Resolver)

// WithStoreTimeout overrides the per-lookup timeout.
func WithStoreTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) {
		if d > 0 {
			r.storeTimeout = d
		}
	}
}

// WithCacheMetrics attaches cache hit/miss counters.
func WithCacheMetrics(m CacheMetrics) ResolverOption {
	return func(r *Resolver) { r.metrics = m }
}

// NewResolver constructs a Resolver. The cache is injected rather than held
// as package state so tests can substitute their own instance.
func NewResolver(cache *RoleCache, store RoleStore, logger *slog.Logger, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		cache:        cache,
		store:        store,
		logger:       logger,
		storeTimeout: DefaultStoreTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the principal's role. Cache hits return without I/O. On a
// miss the store is queried with a bounded timeout; a successful lookup
// populates the cache. Unknown principals are never cached, so a later
// creation of the principal takes effect on the next call. Store failures
// propagate as ErrStoreUnavailable without touching the cache, leaving the
// call retryable.
func (r *Resolver) Resolve(ctx context.Context, principalID string) (Role, error) {
	if role, ok := r.cache.Get(principalID); ok {
		r.countCache("hit")
		return role, nil
	}
	r.countCache("miss")

	ctx, cancel := context.WithTimeout(ctx, r.storeTimeout)
	defer cancel()

	role, err := r.store.LookupRole(ctx, principalID)
	if err != nil {
		if errors.Is(err, ErrUnknownPrincipal) {
			return "", ErrUnknownPrincipal
		}
		if r.logger != nil {
			r.logger.Error("role lookup failed",
				slog.String("principal", principalID),
				slog.Any("error", err))
		}
		return "", fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	r.cache.Set(principalID, role)
	return role, nil
}

// Cache exposes the underlying cache for administrative invalidation.
func (r *Resolver) Cache() *RoleCache {
	return r.cache
}

func (r *Resolver) countCache(event string) {
	if r.metrics != nil {
		r.metrics.CacheEvent(event)
	}
}
