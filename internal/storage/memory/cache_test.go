package memory

import (
	"context"
	"testing"
	"time"
)

type cachedView struct {
	ID    string `json:"id"`
	Total string `json:"total"`
}

func TestCacheSetGetRemove(t *testing.T) {
	cache := NewCache()
	ctx := context.Background()

	stored := cachedView{ID: "abc", Total: "15.50"}
	cache.Set(ctx, "order:abc", stored, time.Minute)

	var got cachedView
	if !cache.Get(ctx, "order:abc", &got) {
		t.Fatal("expected cache hit")
	}
	if got != stored {
		t.Fatalf("cache value mismatch: %+v", got)
	}

	cache.Remove(ctx, "order:abc")
	if cache.Get(ctx, "order:abc", &got) {
		t.Fatal("expected miss after remove")
	}
}

func TestCacheMissOnUnknownKey(t *testing.T) {
	cache := NewCache()

	var got cachedView
	if cache.Get(context.Background(), "order:missing", &got) {
		t.Fatal("expected miss for unknown key")
	}
}

func TestCacheEntryExpires(t *testing.T) {
	cache := NewCache()
	ctx := context.Background()

	current := time.Now()
	cache.now = func() time.Time { return current }

	cache.Set(ctx, "order:abc", cachedView{ID: "abc"}, 2*time.Minute)

	var got cachedView
	if !cache.Get(ctx, "order:abc", &got) {
		t.Fatal("expected hit before expiration")
	}

	current = current.Add(2*time.Minute + time.Second)
	if cache.Get(ctx, "order:abc", &got) {
		t.Fatal("expected miss after ttl")
	}
}

func TestCacheZeroTTLNeverExpires(t *testing.T) {
	cache := NewCache()
	ctx := context.Background()

	current := time.Now()
	cache.now = func() time.Time { return current }

	cache.Set(ctx, "order:abc", cachedView{ID: "abc"}, 0)

	current = current.Add(24 * time.Hour)
	var got cachedView
	if !cache.Get(ctx, "order:abc", &got) {
		t.Fatal("expected entry without ttl to survive")
	}
}
