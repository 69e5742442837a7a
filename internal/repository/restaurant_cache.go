package repository

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"restaurant-service/internal/entity"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

const restaurantCacheKey = "restaurant-data"

type restaurantFetcher interface {
	FetchRestaurantData(ctx context.Context) (*entity.RestaurantData, error)
	Ping(ctx context.Context) error
}

// CachedRestaurantSource serves the restaurant document from Redis and falls
// back to the underlying source when the entry is missing or expired.
type CachedRestaurantSource struct {
	source restaurantFetcher
	rdb    *redis.Client
	ttl    time.Duration
}

// NewCachedRestaurantSource caches source in Redis for ttl.
func NewCachedRestaurantSource(source restaurantFetcher, rdb *redis.Client, ttl time.Duration) *CachedRestaurantSource {
	return &CachedRestaurantSource{source: source, rdb: rdb, ttl: ttl}
}

func (c *CachedRestaurantSource) FetchRestaurantData(ctx context.Context) (*entity.RestaurantData, error) {
	cached, err := c.rdb.Get(ctx, restaurantCacheKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			logger.Debug().Msg("Restaurant data not found in cache")
		} else {
			// a broken cache must not take the menu down
			logger.Error().Err(err).Msg("Error getting restaurant data from cache")
		}
	}

	if cached != "" {
		var data entity.RestaurantData
		err = json.Unmarshal([]byte(cached), &data)
		if err == nil {
			return &data, nil
		}
		logger.Error().Err(err).Msg("Error unmarshalling cached restaurant data")
	}

	data, err := c.source.FetchRestaurantData(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	if err := c.rdb.Set(ctx, restaurantCacheKey, raw, c.ttl).Err(); err != nil {
		logger.Error().Err(err).Msg("Error setting restaurant data in cache")
	}
	return data, nil
}

// Invalidate drops the cached document so the next read hits the source.
func (c *CachedRestaurantSource) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, restaurantCacheKey).Err()
}

func (c *CachedRestaurantSource) Ping(ctx context.Context) error {
	return c.source.Ping(ctx)
}
