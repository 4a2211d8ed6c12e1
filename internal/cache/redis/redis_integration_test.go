package redis

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"
)

func openRedisCacheForIntegrationTest(t *testing.T) *Cache {
	t.Helper()

	addr := strings.TrimSpace(os.Getenv("VENICE_REDIS_TEST_ADDR"))
	if addr == "" {
		addr = "localhost:6379"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	cache, err := Open(ctx, addr, "", 0)
	if err != nil {
		t.Skipf("redis is not available for integration tests: %v", err)
	}
	t.Cleanup(func() {
		_ = cache.Close()
	})

	return cache
}

func TestCache_RedisSetGetRemove(t *testing.T) {
	cache := openRedisCacheForIntegrationTest(t)
	ctx := context.Background()

	type view struct {
		ID    string `json:"id"`
		Total string `json:"total"`
	}

	key := "order:integration-test"
	cache.Remove(ctx, key)

	var got view
	if cache.Get(ctx, key, &got) {
		t.Fatal("expected miss before set")
	}

	cache.Set(ctx, key, view{ID: "abc", Total: "10.00"}, time.Minute)
	if !cache.Get(ctx, key, &got) {
		t.Fatal("expected hit after set")
	}
	if got.ID != "abc" || got.Total != "10.00" {
		t.Fatalf("unexpected cached value: %+v", got)
	}

	cache.Remove(ctx, key)
	if cache.Get(ctx, key, &got) {
		t.Fatal("expected miss after remove")
	}
}

func TestCache_RedisTTLExpires(t *testing.T) {
	cache := openRedisCacheForIntegrationTest(t)
	ctx := context.Background()

	key := "order:integration-ttl"
	cache.Set(ctx, key, map[string]string{"id": "abc"}, time.Second)

	var got map[string]string
	if !cache.Get(ctx, key, &got) {
		t.Fatal("expected hit before expiration")
	}

	time.Sleep(1200 * time.Millisecond)
	if cache.Get(ctx, key, &got) {
		t.Fatal("expected miss after ttl")
	}
}
