package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/elbuensabor/storefront-backend/internal/app/model"
	"github.com/redis/go-redis/v9"
)

// RedisStorage persists cart snapshots as JSON values. Carts never expire
// on their own; the scheduler purges abandoned ones.
type RedisStorage struct {
	client *redis.Client
	prefix string
}

func NewRedisStorage(client *redis.Client, prefix string) *RedisStorage {
	return &RedisStorage{client: client, prefix: prefix}
}

func (r *RedisStorage) redisKey(key string) string {
	return fmt.Sprintf("%s:%s", r.prefix, key)
}

func (r *RedisStorage) Load(ctx context.Context, key string) ([]model.CartItem, error) {
	payload, err := r.client.Get(ctx, r.redisKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to load cart snapshot: %w", err)
	}

	var items []model.CartItem
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, fmt.Errorf("malformed cart snapshot for key %s: %w", key, err)
	}
	return items, nil
}

func (r *RedisStorage) Save(ctx context.Context, key string, items []model.CartItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to serialize cart: %w", err)
	}
	return r.client.Set(ctx, r.redisKey(key), payload, 0).Err()
}

func (r *RedisStorage) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.redisKey(key)).Err()
}
