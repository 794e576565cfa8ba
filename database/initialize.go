package database

import (
	"context"
	"embed"
	"fmt"

	"location-service/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

// goose dialect per database/sql driver name
var dialects = map[string]string{
	"sqlite3": "sqlite3",
	"pgx":     "postgres",
}

// InitializeDatabase opens the storage connection pool and brings the schema up to date.
// The returned handle is safe for concurrent use and must be closed at shutdown.
func InitializeDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dbConn, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	if err := dbConn.PingContext(ctx); err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}

	if err := Migrate(ctx, dbConn); err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("Database initialized successfully", zap.String("driver", cfg.Driver))
	return dbConn, nil
}

// Open creates the pool without touching the schema.
func Open(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	if _, ok := dialects[cfg.Driver]; !ok {
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
	dbConn, err := sqlx.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}
	if cfg.MaxOpenConns > 0 {
		dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	return dbConn, nil
}

// Migrate applies the embedded migrations.
func Migrate(ctx context.Context, dbConn *sqlx.DB) error {
	dialect, ok := dialects[dbConn.DriverName()]
	if !ok {
		return fmt.Errorf("no migration dialect for driver %q", dbConn.DriverName())
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	return goose.UpContext(ctx, dbConn.DB, "migrations")
}
