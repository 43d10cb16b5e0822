// Package cache keeps derived title ratings in Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RatingCache stores the computed rating of a title. A cached nil rating means
// the title has no reviews.
type RatingCache interface {
	Get(ctx context.Context, titleID int64) (rating *float64, ok bool, err error)
	Set(ctx context.Context, titleID int64, rating *float64) error
	Invalidate(ctx context.Context, titleIDs ...int64) error
}

const noRating = "null"

type RedisRatingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRatingCache connects to redisURL. An empty URL returns a cache that
// never hits.
func NewRedisRatingCache(redisURL string, ttl time.Duration) (*RedisRatingCache, error) {
	if redisURL == "" {
		return &RedisRatingCache{}, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisRatingCache{client: rdb, ttl: ttl}, nil
}

func ratingKey(titleID int64) string {
	return fmt.Sprintf("rating:title:%d", titleID)
}

func (c *RedisRatingCache) Get(ctx context.Context, titleID int64) (*float64, bool, error) {
	if c == nil || c.client == nil {
		return nil, false, nil
	}

	val, err := c.client.Get(ctx, ratingKey(titleID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if val == noRating {
		return nil, true, nil
	}

	rating, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil, false, fmt.Errorf("corrupt rating for title %d: %w", titleID, err)
	}
	return &rating, true, nil
}

func (c *RedisRatingCache) Set(ctx context.Context, titleID int64, rating *float64) error {
	if c == nil || c.client == nil {
		return nil
	}

	val := noRating
	if rating != nil {
		val = strconv.FormatFloat(*rating, 'f', -1, 64)
	}
	return c.client.Set(ctx, ratingKey(titleID), val, c.ttl).Err()
}

func (c *RedisRatingCache) Invalidate(ctx context.Context, titleIDs ...int64) error {
	if c == nil || c.client == nil || len(titleIDs) == 0 {
		return nil
	}

	keys := make([]string, len(titleIDs))
	for i, id := range titleIDs {
		keys[i] = ratingKey(id)
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *RedisRatingCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
