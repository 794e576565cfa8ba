// Package databasetest provides a migrated throwaway SQLite database for tests.
package databasetest

import (
	"context"
	"path/filepath"
	"testing"

	"location-service/config"
	"location-service/database"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// Config returns a sqlite3 configuration backed by a file in t's temp dir.
func Config(t testing.TB) config.DatabaseConfig {
	t.Helper()
	path := filepath.Join(t.TempDir(), "location_service_test.db")
	return config.DatabaseConfig{
		Driver:       "sqlite3",
		DSN:          "file:" + path + "?_busy_timeout=5000&_txlock=immediate",
		MaxOpenConns: 4,
	}
}

// New opens and migrates a fresh database that is closed when the test ends.
func New(t testing.TB) *sqlx.DB {
	t.Helper()
	dbConn, err := database.Open(Config(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbConn.Close() })

	require.NoError(t, database.Migrate(context.Background(), dbConn))
	return dbConn
}
