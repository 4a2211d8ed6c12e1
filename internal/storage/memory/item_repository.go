package memory

import (
	"context"
	"sync"

	"github.com/venicelabs/orders/internal/domain"
)

// OrderItemRepository хранит позиции заказов в памяти процесса.
type OrderItemRepository struct {
	mu    sync.RWMutex
	items map[string][]domain.OrderItem // ключ — id заказа
}

// NewOrderItemRepository создаёт пустой репозиторий позиций.
func NewOrderItemRepository() *OrderItemRepository {
	return &OrderItemRepository{items: make(map[string][]domain.OrderItem)}
}

func (r *OrderItemRepository) GetByOrderID(_ context.Context, orderID string) ([]domain.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.items[orderID]
	items := make([]domain.OrderItem, len(stored))
	copy(items, stored)
	return items, nil
}

func (r *OrderItemRepository) Create(_ context.Context, item domain.OrderItem) (domain.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.OrderID] = append(r.items[item.OrderID], item)
	return item, nil
}

func (r *OrderItemRepository) CreateMany(_ context.Context, items []domain.OrderItem) ([]domain.OrderItem, error) {
	if len(items) == 0 {
		return []domain.OrderItem{}, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		r.items[item.OrderID] = append(r.items[item.OrderID], item)
	}
	return items, nil
}

func (r *OrderItemRepository) DeleteByOrderID(_ context.Context, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, orderID)
	return nil
}

var _ domain.OrderItemRepository = (*OrderItemRepository)(nil)
