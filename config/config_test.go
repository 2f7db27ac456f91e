package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setRequiredEnv provides the minimum environment LoadConfig accepts.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "galleria")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "galleria")
	t.Setenv("JWT_SECRET", "config-test-secret")
}

// clearOptionalEnv removes the optional variables so defaults apply.
func clearOptionalEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DB_HOST", "DB_PORT", "DB_POOL_SIZE",
		"SESSION_TOKEN_TTL", "RESET_TOKEN_TTL", "RESET_LINK_BASE", "PORT",
	} {
		// t.Setenv registers cleanup for the key; unsetting after
		// guarantees the variable is absent for this test.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)
	clearOptionalEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 10, cfg.DB.MaxSize)
	assert.Equal(t, 168*time.Hour, cfg.Auth.SessionTokenTTL)
	assert.Equal(t, 15*time.Minute, cfg.Auth.ResetTokenTTL)
	assert.Equal(t, "http://localhost:5173/reset-password", cfg.Auth.ResetLinkBase)
	assert.Equal(t, "5000", cfg.Server.Port)
}

func TestLoadConfig_Overrides(t *testing.T) {
	setRequiredEnv(t)
	clearOptionalEnv(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6432")
	t.Setenv("DB_POOL_SIZE", "25")
	t.Setenv("SESSION_TOKEN_TTL", "24h")
	t.Setenv("RESET_TOKEN_TTL", "5m")
	t.Setenv("PORT", "8080")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 6432, cfg.DB.Port)
	assert.Equal(t, 25, cfg.DB.MaxSize)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTokenTTL)
	assert.Equal(t, 5*time.Minute, cfg.Auth.ResetTokenTTL)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	clearOptionalEnv(t)
	for _, key := range []string{"DB_USER", "DB_PASSWORD", "DB_NAME", "JWT_SECRET"} {
		os.Unsetenv(key)
	}

	_, err := LoadConfig()
	require.Error(t, err)
	// All missing variables are reported together.
	assert.Contains(t, err.Error(), "DB_USER")
	assert.Contains(t, err.Error(), "DB_PASSWORD")
	assert.Contains(t, err.Error(), "DB_NAME")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	setRequiredEnv(t)
	clearOptionalEnv(t)
	t.Setenv("DB_PORT", "not-a-port")
	t.Setenv("SESSION_TOKEN_TTL", "bananas")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PORT")
	assert.Contains(t, err.Error(), "SESSION_TOKEN_TTL")
}
