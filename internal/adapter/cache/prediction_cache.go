package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Fawaz-asif/Email-spam-detector/internal/domain/entity"
)

const keyPrefix = "spamguard:prediction:"

// store is the subset of the redis client the cache needs
type store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// PredictionCache keeps prediction results in redis
type PredictionCache struct {
	client store
	ttl    time.Duration
}

// NewPredictionCache creates a redis backed prediction cache
func NewPredictionCache(client store, ttl time.Duration) *PredictionCache {
	return &PredictionCache{client: client, ttl: ttl}
}

// Get returns the cached result for key. A miss is (nil, nil).
func (c *PredictionCache) Get(ctx context.Context, key string) (*entity.PredictionResult, error) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cache: %w", err)
	}

	var result entity.PredictionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode cached result: %w", err)
	}
	return &result, nil
}

// Set stores result under key for the configured TTL
func (c *PredictionCache) Set(ctx context.Context, key string, result *entity.PredictionResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if err := c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}
