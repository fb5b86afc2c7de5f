package app

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, ":8080", cfg.AppAddr)
	require.EqualValues(t, 11, cfg.FunnelSeed)
	require.Equal(t, devSecret, cfg.SessionSecret)
	require.Equal(t, devSecret, cfg.CSRFSecret)
	require.False(t, cfg.IsProduction())
}

func TestLoadConfigProductionRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("SESSION_SECRET", "prod-session-secret")
	t.Setenv("CSRF_SECRET", "prod-csrf-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.True(t, cfg.IsProduction())
}

func TestLoadConfigRejectsInvalidEnv(t *testing.T) {
	t.Setenv("APP_ENV", "sandbox")

	_, err := LoadConfig()
	require.Error(t, err)
}
