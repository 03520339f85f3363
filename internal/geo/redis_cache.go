package geo

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache shares search results between service instances.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to Redis at redisURL (redis://host:6379/0).
func NewRedisCache(ctx context.Context, redisURL string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("geo cache: invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("geo cache: redis ping failed: %w", err)
	}

	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisCache{client: client, ttl: ttl}, nil
}

// Get returns a cached result; any Redis or decoding error is a miss.
func (c *RedisCache) Get(ctx context.Context, key string) (SearchResult, bool) {
	data, err := c.client.Get(ctx, redisKey(key)).Bytes()
	if err != nil {
		return SearchResult{}, false
	}

	var result SearchResult
	if err := json.Unmarshal(data, &result); err != nil {
		return SearchResult{}, false
	}
	return result, true
}

// Set stores a result with the configured TTL.
func (c *RedisCache) Set(ctx context.Context, key string, result SearchResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("geo cache: marshal error: %w", err)
	}
	return c.client.Set(ctx, redisKey(key), data, c.ttl).Err()
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func redisKey(key string) string {
	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("findergoal:pitches:%x", hash[:8])
}
