package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: test-secret
database:
  host: localhost
  name: optix
  user: optix
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 20, cfg.Database.MaxConns)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("OPTIX_SERVER_PORT", "9999")
	t.Setenv("OPTIX_JWT_SECRET", "env-secret")
	t.Setenv("OPTIX_DB_PASSWORD", "env-password")
	t.Setenv("OPTIX_TOKEN_TTL", "30m")

	path := writeConfig(t, `
server:
  port: 8080
auth:
  jwt_secret: file-secret
database:
  password: file-password
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "env-password", cfg.Database.Password)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: 5433, Name: "optix", User: "app", Password: "pw",
	}
	assert.Equal(t, "postgres://app:pw@db:5433/optix?sslmode=disable", cfg.DSN())
}
