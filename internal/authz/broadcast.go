package authz

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// InvalidationChannel is the pub/sub channel carrying cache invalidation
// events between processes.
const InvalidationChannel = "authz:invalidate"

// invalidateAllToken signals a full cache flush. Principal identifiers are
// opaque strings supplied by the identity store and never collide with it.
const invalidateAllToken = "*"

// Broadcaster publishes cache invalidation events so every process drops a
// principal's cached role immediately after a role change, rather than
// waiting out the TTL.
type Broadcaster struct {
	client *redis.Client
}

// NewBroadcaster constructs a Broadcaster on the shared Redis client.
func NewBroadcaster(client *redis.Client) *Broadcaster {
	return &Broadcaster{client: client}
}

// Invalidate announces that one principal's cached role is stale.
func (b *Broadcaster) Invalidate(ctx context.Context, principalID string) error {
	return b.client.Publish(ctx, InvalidationChannel, principalID).Err()
}

// InvalidateAll announces a full cache flush.
func (b *Broadcaster) InvalidateAll(ctx context.Context) error {
	return b.client.Publish(ctx, InvalidationChannel, invalidateAllToken).Err()
}

// Subscriber applies broadcast invalidation events to the local cache.
type Subscriber struct {
	client *redis.Client
	cache  *RoleCache
	logger *slog.Logger
}

// NewSubscriber constructs a Subscriber bound to the given cache.
func NewSubscriber(client *redis.Client, cache *RoleCache, logger *slog.Logger) *Subscriber {
	return &Subscriber{client: client, cache: cache, logger: logger}
}

// Run consumes invalidation events until the context is cancelled. It returns
// nil on cancellation.
func (s *Subscriber) Run(ctx context.Context) error {
	sub := s.client.Subscribe(ctx, InvalidationChannel)
	defer func() {
		if err := sub.Close(); err != nil && s.logger != nil {
			s.logger.Warn("close invalidation subscription", slog.Any("error", err))
		}
	}()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			s.apply(msg.Payload)
		}
	}
}

func (s *Subscriber) apply(payload string) {
	if payload == invalidateAllToken {
		s.cache.InvalidateAll()
	} else if payload != "" {
		s.cache.Invalidate(payload)
	}
	if s.logger != nil {
		s.logger.Debug("cache invalidation applied", slog.String("target", payload))
	}
}
