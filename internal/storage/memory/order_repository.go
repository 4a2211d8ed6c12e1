package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/venicelabs/orders/internal/domain"
)

// OrderRepository хранит заказы в памяти процесса.
// Используется в тестах и при запуске без внешнего PostgreSQL.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

// NewOrderRepository создаёт пустой репозиторий заказов.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[string]domain.Order)}
}

func (r *OrderRepository) Get(_ context.Context, id string) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return order, nil
}

func (r *OrderRepository) GetAll(_ context.Context) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orders = append(orders, order)
	}
	// Сначала свежие; при равном времени — по убыванию id,
	// как в SQL-репозитории (created_at DESC, id DESC).
	sort.Slice(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].ID > orders[j].ID
		}
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	return orders, nil
}

func (r *OrderRepository) Create(_ context.Context, order domain.Order) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; ok {
		return domain.Order{}, fmt.Errorf("insert order: id %s already exists", order.ID)
	}
	r.orders[order.ID] = order
	return order, nil
}

func (r *OrderRepository) Update(_ context.Context, order domain.Order) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	r.orders[order.ID] = order
	return order, nil
}

func (r *OrderRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.orders, id)
	return nil
}

var _ domain.OrderRepository = (*OrderRepository)(nil)
