package repos_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"foodcourt/internal/domain"
	"foodcourt/internal/repos"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client, err := repos.OpenRedis(context.Background(), addr)
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestRedisTopCache(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	cache := repos.NewRedisTopCache(client, time.Minute)
	_ = cache.Invalidate(ctx)

	if _, ok, err := cache.GetTop(ctx, 3); err != nil || ok {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}

	items := []domain.FoodItem{{ID: "a", Name: "Pizza", Price: 9.5, Count: 4}}
	if err := cache.SetTop(ctx, 3, items); err != nil {
		t.Fatal(err)
	}
	got, ok, err := cache.GetTop(ctx, 3)
	if err != nil || !ok || len(got) != 1 || got[0].Name != "Pizza" || got[0].Count != 4 {
		t.Fatalf("cached: %+v ok=%v err=%v", got, ok, err)
	}
	if _, ok, _ := cache.GetTop(ctx, 5); ok {
		t.Fatal("limits must be cached separately")
	}

	if err := cache.Invalidate(ctx); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := cache.GetTop(ctx, 3); ok {
		t.Fatal("invalidate must drop cached lists")
	}
}

func TestRedisTopCacheEntriesExpireIndependently(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	cache := repos.NewRedisTopCache(client, time.Minute)
	_ = cache.Invalidate(ctx)
	defer cache.Invalidate(ctx)

	items := []domain.FoodItem{{ID: "a", Name: "Pizza"}}
	if err := cache.SetTop(ctx, 3, items); err != nil {
		t.Fatal(err)
	}
	if err := client.PExpire(ctx, "homecard:top:3", 500*time.Millisecond).Err(); err != nil {
		t.Fatal(err)
	}
	if err := cache.SetTop(ctx, 6, items); err != nil {
		t.Fatal(err)
	}

	left, err := client.PTTL(ctx, "homecard:top:3").Result()
	if err != nil {
		t.Fatal(err)
	}
	if left <= 0 || left > 500*time.Millisecond {
		t.Fatalf("writing another limit changed the older entry's TTL: %v", left)
	}
	if ttl := client.TTL(ctx, "homecard:top:6").Val(); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("new entry ttl = %v", ttl)
	}
}
