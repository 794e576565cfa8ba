package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"location-service/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umakantv/go-utils/logger"
)

func TestMain(m *testing.M) {
	logger.Init(logger.LoggerConfig{CallerKey: "file", TimeKey: "timestamp", CallerSkip: 1})
	os.Exit(m.Run())
}

func sqliteConfig(t *testing.T) config.DatabaseConfig {
	return config.DatabaseConfig{
		Driver: "sqlite3",
		DSN:    "file:" + filepath.Join(t.TempDir(), "init.db") + "?_busy_timeout=5000",
	}
}

func TestInitializeDatabase_CreatesSchema(t *testing.T) {
	ctx := context.Background()
	dbConn, err := InitializeDatabase(ctx, sqliteConfig(t))
	require.NoError(t, err)
	defer dbConn.Close()

	var tables []string
	require.NoError(t, dbConn.Select(&tables,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('users', 'locations') ORDER BY name`))
	assert.Equal(t, []string{"locations", "users"}, tables)
}

func TestMigrate_Idempotent(t *testing.T) {
	ctx := context.Background()
	dbConn, err := Open(sqliteConfig(t))
	require.NoError(t, err)
	defer dbConn.Close()

	require.NoError(t, Migrate(ctx, dbConn))
	require.NoError(t, Migrate(ctx, dbConn))
}

func TestOpen_RejectsUnknownDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "mongodb", DSN: "mongodb://localhost"})
	assert.Error(t, err)
}
