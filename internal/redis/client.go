package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Product search cache

func (c *Client) SetSearchResults(query string, results interface{}, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal search results: %w", err)
	}
	return c.rdb.Set(ctx, "search:"+query, jsonData, ttl).Err()
}

func (c *Client) GetSearchResults(query string, dest interface{}) error {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "search:"+query).Result()
	if err != nil {
		if err == redis.Nil {
			return fmt.Errorf("search results not cached")
		}
		return fmt.Errorf("failed to get search results: %w", err)
	}
	return json.Unmarshal([]byte(val), dest)
}

// Order stats cache

func (c *Client) SetOrderStats(stats interface{}, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal order stats: %w", err)
	}
	return c.rdb.Set(ctx, "orders:stats", jsonData, ttl).Err()
}

func (c *Client) GetOrderStats(dest interface{}) error {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "orders:stats").Result()
	if err != nil {
		if err == redis.Nil {
			return fmt.Errorf("order stats not cached")
		}
		return fmt.Errorf("failed to get order stats: %w", err)
	}
	return json.Unmarshal([]byte(val), dest)
}

// InvalidateOrderStats drops the cached stats after any order mutation.
func (c *Client) InvalidateOrderStats() error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "orders:stats").Err()
}

// Revoked token tracking for logout

func (c *Client) RevokeToken(tokenID string, ttl time.Duration) error {
	ctx := context.Background()
	return c.rdb.Set(ctx, "revoked:"+tokenID, 1, ttl).Err()
}

func (c *Client) IsTokenRevoked(tokenID string) (bool, error) {
	ctx := context.Background()
	_, err := c.rdb.Get(ctx, "revoked:"+tokenID).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}
	return true, nil
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
