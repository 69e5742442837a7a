package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"restaurant-service/internal/entity"
)

// CartRepository persists cart snapshots in Redis, one JSON value per key.
type CartRepository struct {
	rdb       *redis.Client
	retention time.Duration
}

// NewCartRepository creates a CartRepository. Keys are dropped by Redis after
// retention without writes; zero keeps them forever.
func NewCartRepository(rdb *redis.Client, retention time.Duration) *CartRepository {
	return &CartRepository{rdb: rdb, retention: retention}
}

func (r *CartRepository) Load(ctx context.Context, key string) (*entity.CartSnapshot, error) {
	val, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var snapshot entity.CartSnapshot
	if err := json.Unmarshal([]byte(val), &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *CartRepository) Save(ctx context.Context, key string, snapshot entity.CartSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, key, data, r.retention).Err()
}

func (r *CartRepository) Delete(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, key).Err()
}

func (r *CartRepository) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}
