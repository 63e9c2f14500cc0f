package authz

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestCache(ttl time.Duration) (*RoleCache, *time.Time) {
	cache := NewRoleCache(ttl)
	current := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }
	return cache, &current
}

func TestCacheGetAfterSet(t *testing.T) {
	cache, _ := newTestCache(5 * time.Minute)

	cache.Set("u1", RoleSales)
	role, ok := cache.Get("u1")
	require.True(t, ok)
	require.Equal(t, RoleSales, role)

	_, ok = cache.Get("u2")
	require.False(t, ok)
}

func TestCacheExpiresAfterTTL(t *testing.T) {
	cache, now := newTestCache(5 * time.Minute)

	cache.Set("u1", RoleFinance)
	*now = now.Add(5*time.Minute - time.Second)
	_, ok := cache.Get("u1")
	require.True(t, ok)

	*now = now.Add(2 * time.Second)
	_, ok = cache.Get("u1")
	require.False(t, ok)
	// Stale entry is dropped lazily on read.
	require.Equal(t, 0, cache.Len())
}

func TestCacheSetOverwrites(t *testing.T) {
	cache, now := newTestCache(time.Minute)

	cache.Set("u1", RoleSales)
	*now = now.Add(50 * time.Second)
	cache.Set("u1", RoleInventory)
	*now = now.Add(30 * time.Second)

	role, ok := cache.Get("u1")
	require.True(t, ok, "overwrite must refresh the timestamp")
	require.Equal(t, RoleInventory, role)
}

func TestCacheInvalidate(t *testing.T) {
	cache, _ := newTestCache(time.Minute)

	cache.Set("u1", RoleSales)
	cache.Set("u2", RoleFinance)

	cache.Invalidate("u1")
	_, ok := cache.Get("u1")
	require.False(t, ok)
	_, ok = cache.Get("u2")
	require.True(t, ok)

	cache.InvalidateAll()
	require.Equal(t, 0, cache.Len())
}

func TestCacheDefaultTTL(t *testing.T) {
	require.Equal(t, DefaultCacheTTL, NewRoleCache(0).TTL())
	require.Equal(t, time.Minute, NewRoleCache(time.Minute).TTL())
}

func TestCacheConcurrentAccess(t *testing.T) {
	cache := NewRoleCache(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("u%d", n%4)
			for j := 0; j < 200; j++ {
				cache.Set(id, RoleSales)
				cache.Get(id)
				if j%50 == 0 {
					cache.Invalidate(id)
				}
				if j%97 == 0 {
					cache.InvalidateAll()
				}
			}
		}(i)
	}
	wg.Wait()

	// Whatever survived must read back consistently.
	for i := 0; i < 4; i++ {
		if role, ok := cache.Get(fmt.Sprintf("u%d", i)); ok {
			require.Equal(t, RoleSales, role)
		}
	}
}
