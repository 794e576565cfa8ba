package config

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config is the process-wide configuration, loaded once at startup.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	Auth     AuthConfig     `koanf:"auth"`
}

type ServerConfig struct {
	Port            string        `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DatabaseConfig selects the SQL driver and connection string.
// Driver is "sqlite3" or "pgx".
type DatabaseConfig struct {
	Driver       string `koanf:"driver"`
	DSN          string `koanf:"dsn"`
	MaxOpenConns int    `koanf:"max_open_conns"`
}

// RedisConfig enables the API key lookup cache when Addr is set.
type RedisConfig struct {
	Addr     string        `koanf:"addr"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db"`
	KeyTTL   time.Duration `koanf:"key_ttl"`
}

type AuthConfig struct {
	BcryptCost int `koanf:"bcrypt_cost"`
}

var supportedDrivers = map[string]bool{
	"sqlite3": true,
	"pgx":     true,
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return errors.New("database.dsn is required (set DATABASE_URL)")
	}
	if !supportedDrivers[c.Database.Driver] {
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}
	if c.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.bcrypt_cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.Redis.Addr != "" && c.Redis.KeyTTL <= 0 {
		return errors.New("redis.key_ttl must be positive when redis is enabled")
	}
	return nil
}
