package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points CONFIG_PATH at a missing file so a stray config.yaml in the
// working directory cannot leak into a test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "absent.yaml"))
	for _, k := range []string{"PORT", "DATABASE_URL", "DATABASE_DRIVER", "REDIS_ADDR", "BCRYPT_COST", "API_KEY_CACHE_TTL"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_FailsWithoutDatabaseURL(t *testing.T) {
	isolate(t)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.dsn is required")
}

func TestLoad_DefaultsAndEnv(t *testing.T) {
	isolate(t)
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("PORT", "8081")
	t.Setenv("API_KEY_CACHE_TTL", "30s")
	t.Setenv("BCRYPT_COST", "10")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "file:test.db", cfg.Database.DSN)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Redis.KeyTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoad_FileThenEnvOverride(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9000"
database:
  driver: pgx
  dsn: postgres://localhost/loc
redis:
  addr: localhost:6379
`), 0o600))
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("PORT", "9100")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, "pgx", cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/loc", cfg.Database.DSN)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		c := defaultConfig()
		c.Database.DSN = "file:x.db"
		return c
	}

	require.NoError(t, base().Validate())

	c := base()
	c.Database.Driver = "mongodb"
	assert.Error(t, c.Validate())

	c = base()
	c.Auth.BcryptCost = 99
	assert.Error(t, c.Validate())

	c = base()
	c.Redis.Addr = "localhost:6379"
	c.Redis.KeyTTL = 0
	assert.Error(t, c.Validate())
}

func TestEnvTransformFunc_SkipsUnmapped(t *testing.T) {
	assert.Equal(t, "database.dsn", envTransformFunc("DATABASE_URL"))
	assert.Equal(t, "", envTransformFunc("HOME"))
}
