package domain

import (
	"context"
	"time"
)

// OrderRepository — хранилище заголовков заказов.
// Get для отсутствующего id возвращает ErrOrderNotFound, а не пустой заголовок;
// инфраструктурные сбои оборачиваются в ErrStoreUnavailable.
type OrderRepository interface {
	Get(ctx context.Context, id string) (Order, error)
	GetAll(ctx context.Context) ([]Order, error)
	Create(ctx context.Context, order Order) (Order, error)
	Update(ctx context.Context, order Order) (Order, error)
	Delete(ctx context.Context, id string) error
}

// OrderItemRepository — хранилище позиций заказа, адресуемых по order id.
// GetByOrderID возвращает пустой срез, а не ошибку, если позиций нет.
// CreateMany не даёт атомарности между позициями: частичный сбой батча может
// оставить часть позиций записанными.
type OrderItemRepository interface {
	GetByOrderID(ctx context.Context, orderID string) ([]OrderItem, error)
	Create(ctx context.Context, item OrderItem) (OrderItem, error)
	CreateMany(ctx context.Context, items []OrderItem) ([]OrderItem, error)
	DeleteByOrderID(ctx context.Context, orderID string) error
}

// UserRepository — чтение пользователей для аутентификации и обогащения
// списков заказов.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
}

// Cache — key/value кэш собранных представлений заказов с TTL.
// Сериализация значения скрыта за интерфейсом. Промах и недоступность кэша
// неразличимы для вызывающего: и то и другое выглядит как отсутствие ключа,
// ошибки наружу не отдаются.
type Cache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, ttl time.Duration)
	Remove(ctx context.Context, key string)
}

// EventPublisher публикует доменные события во внешний канал.
// Успех означает «принято к доставке», а не подтверждение подписчиков.
type EventPublisher interface {
	Publish(ctx context.Context, event any) error
}
