package repos

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"foodcourt/internal/domain"

	"github.com/redis/go-redis/v9"
)

// Each limit is cached under its own key so every entry carries its own
// TTL. Invalidate drops all of them.
const topKeyPrefix = "homecard:top:"

func topKey(limit int) string { return topKeyPrefix + strconv.Itoa(limit) }

type RedisTopCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisTopCache(client *redis.Client, ttl time.Duration) *RedisTopCache {
	return &RedisTopCache{client: client, ttl: ttl}
}

// OpenRedis connects and pings.
func OpenRedis(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func (r *RedisTopCache) GetTop(ctx context.Context, limit int) ([]domain.FoodItem, bool, error) {
	b, err := r.client.Get(ctx, topKey(limit)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var out []domain.FoodItem
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, false, err
	}
	return out, true, nil
}

func (r *RedisTopCache) SetTop(ctx context.Context, limit int, items []domain.FoodItem) error {
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, topKey(limit), b, r.ttl).Err()
}

func (r *RedisTopCache) Invalidate(ctx context.Context) error {
	var keys []string
	iter := r.client.Scan(ctx, 0, topKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}
