package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.AppAddr)
	require.Equal(t, 5*time.Minute, cfg.AuthzCacheTTL)
	require.Equal(t, 3*time.Second, cfg.AuthzStoreTimeout)
	require.False(t, cfg.IsProduction())
}

func TestLoadConfigRejectsNonPositiveTTL(t *testing.T) {
	t.Setenv("AUTHZ_CACHE_TTL", "0s")
	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigRejectsNonPositiveStoreTimeout(t *testing.T) {
	t.Setenv("AUTHZ_STORE_TIMEOUT", "-1s")
	_, err := LoadConfig()
	require.Error(t, err)
}

func TestIsProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.True(t, cfg.IsProduction())
}
