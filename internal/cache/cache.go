// Package cache provides a Redis-backed cache for the aggregated payload.
// It sits at the HTTP boundary; the aggregation core itself stays
// stateless and recomputes on every call.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/amina/opportunity-radar/internal/models"
)

const aggregatedKey = "oppradar:aggregated:v1"

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis at the given URL (redis://host:port) and verifies
// the connection with a bounded ping.
func New(redisURL string, ttl time.Duration) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("cache: invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: redis ping failed: %w", err)
	}

	return &Cache{client: client, ttl: ttl}, nil
}

// GetAggregated returns the cached aggregation and true when a valid entry
// exists. Any Redis or decode problem reads as a miss.
func (c *Cache) GetAggregated(ctx context.Context) (models.AggregatedOpportunities, bool) {
	var aggregated models.AggregatedOpportunities

	data, err := c.client.Get(ctx, aggregatedKey).Bytes()
	if err != nil {
		return aggregated, false
	}
	if err := json.Unmarshal(data, &aggregated); err != nil {
		return aggregated, false
	}
	return aggregated, true
}

// SetAggregated stores the aggregation with the configured TTL.
func (c *Cache) SetAggregated(ctx context.Context, aggregated models.AggregatedOpportunities) error {
	data, err := json.Marshal(aggregated)
	if err != nil {
		return fmt.Errorf("cache: marshal error: %w", err)
	}
	return c.client.Set(ctx, aggregatedKey, data, c.ttl).Err()
}

// Close closes the Redis connection.
func (c *Cache) Close() error {
	return c.client.Close()
}
