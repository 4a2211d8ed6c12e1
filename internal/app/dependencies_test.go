package app

import (
	"context"
	"testing"

	"github.com/venicelabs/orders/internal/storage/memory"
)

func TestNewDependenciesMemoryFallbacks(t *testing.T) {
	cfg := DefaultConfig()

	deps, err := NewDependencies(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("new dependencies: %v", err)
	}
	t.Cleanup(func() { deps.Close(context.Background()) })

	if _, ok := deps.Orders.(*memory.OrderRepository); !ok {
		t.Errorf("expected memory order repository, got %T", deps.Orders)
	}
	if _, ok := deps.Items.(*memory.OrderItemRepository); !ok {
		t.Errorf("expected memory item repository, got %T", deps.Items)
	}
	if _, ok := deps.Users.(*memory.UserRepository); !ok {
		t.Errorf("expected memory user repository, got %T", deps.Users)
	}
	if _, ok := deps.Cache.(*memory.Cache); !ok {
		t.Errorf("expected memory cache, got %T", deps.Cache)
	}
	if _, ok := deps.Publisher.(*logPublisher); !ok {
		t.Errorf("expected log publisher, got %T", deps.Publisher)
	}
	if deps.Health == nil {
		t.Error("health handler must be initialized")
	}
}

func TestLogPublisherAcceptsEvents(t *testing.T) {
	deps, err := NewDependencies(context.Background(), DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("new dependencies: %v", err)
	}
	t.Cleanup(func() { deps.Close(context.Background()) })

	if err := deps.Publisher.Publish(context.Background(), map[string]string{"order_id": "abc"}); err != nil {
		t.Fatalf("log publisher must accept any event: %v", err)
	}
}
