package cache

import (
	"context"
	"fmt"
	"time"

	"location-service/config"

	"github.com/redis/go-redis/v9"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// InitializeCache connects to redis when an address is configured.
// A nil client means caching is disabled.
func InitializeCache(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		logger.Info("Redis not configured, API key cache disabled")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	logger.Info("Redis cache initialized", zap.String("addr", cfg.Addr), zap.Duration("key_ttl", cfg.KeyTTL))
	return client, nil
}
