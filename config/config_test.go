package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "0.0.0.0:4000", cfg.Server.Address)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.Server.CorsOrigins)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Contains(t, cfg.DB.DSN, "postgresql://")
	assert.Equal(t, 50, cfg.DB.MaxOpenConns)
	assert.Equal(t, time.Hour, cfg.DB.ConnMaxLifetime)
	assert.Equal(t, 168*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "productos", cfg.Cloudinary.Folder)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("BACKOFFICE_SERVER_ADDRESS", "0.0.0.0:9999")
	t.Setenv("BACKOFFICE_DATABASE_DSN", "postgresql://app:app@db:5432/shop")
	t.Setenv("BACKOFFICE_AUTH_JWT_SECRET", "env-secret")
	t.Setenv("BACKOFFICE_ENVIRONMENT", "production")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9999", cfg.Server.Address)
	assert.Equal(t, "postgresql://app:app@db:5432/shop", cfg.DB.DSN)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.True(t, cfg.IsProduction())
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
environment: staging
server:
  address: 127.0.0.1:8080
  timeout: 10s
auth:
  jwt_secret: file-secret
  token_ttl: 24h
redis:
  enabled: true
  host: redis.internal
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Address)
	assert.Equal(t, 10*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "file-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis.internal", cfg.Redis.Host)

	// Keys the file omits keep their defaults
	assert.Equal(t, 50, cfg.DB.MaxOpenConns)
}
