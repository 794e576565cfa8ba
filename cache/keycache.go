package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"location-service/metrics"
	"location-service/models"

	"github.com/redis/go-redis/v9"
)

const apiKeyPrefix = "apikey:"

type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// KeyCache maps API keys to the identity they authenticate.
// Keys are stored as sha256 digests so the raw credential never reaches redis.
type KeyCache struct {
	client redisClient
	ttl    time.Duration
}

func NewKeyCache(client redisClient, ttl time.Duration) *KeyCache {
	return &KeyCache{client: client, ttl: ttl}
}

type cachedIdentity struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func cacheKey(apiKey string) string {
	sum := sha256.Sum256([]byte(apiKey))
	return apiKeyPrefix + hex.EncodeToString(sum[:])
}

// Get returns (nil, nil) on a miss.
func (c *KeyCache) Get(ctx context.Context, apiKey string) (*models.User, error) {
	raw, err := c.client.Get(ctx, cacheKey(apiKey)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.KeyCacheLookupsTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if err != nil {
		metrics.KeyCacheLookupsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var id cachedIdentity
	if err := json.Unmarshal(raw, &id); err != nil {
		metrics.KeyCacheLookupsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("decode cached identity: %w", err)
	}
	metrics.KeyCacheLookupsTotal.WithLabelValues("hit").Inc()
	return &models.User{ID: id.ID, Email: id.Email, CreatedAt: id.CreatedAt}, nil
}

func (c *KeyCache) Set(ctx context.Context, apiKey string, user *models.User) error {
	raw, err := json.Marshal(cachedIdentity{ID: user.ID, Email: user.Email, CreatedAt: user.CreatedAt})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(apiKey), raw, c.ttl).Err()
}
