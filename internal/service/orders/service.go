package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/venicelabs/orders/internal/domain"
	"github.com/venicelabs/orders/internal/metrics"
)

const (
	// Собранное представление живёт в кэше две минуты.
	cacheTTL = 2 * time.Minute
)

// cacheKey строит ключ кэша представления заказа.
func cacheKey(orderID string) string {
	return "order:" + orderID
}

// Service — оркестратор пути записи и чтения заказа. Путь записи фиксирован:
// заголовок -> позиции -> событие -> сброс кэша; шаги не откатываются,
// частичный сбой оставляет уже записанное на месте.
type Service struct {
	orders    domain.OrderRepository
	items     domain.OrderItemRepository
	users     domain.UserRepository
	cache     domain.Cache
	publisher domain.EventPublisher
	metrics   *metrics.OrderMetrics
	logger    *log.Entry
}

// NewService собирает оркестратор из портов хранилищ, кэша и издателя событий.
func NewService(
	orders domain.OrderRepository,
	items domain.OrderItemRepository,
	users domain.UserRepository,
	cache domain.Cache,
	publisher domain.EventPublisher,
	orderMetrics *metrics.OrderMetrics,
) *Service {
	return &Service{
		orders:    orders,
		items:     items,
		users:     users,
		cache:     cache,
		publisher: publisher,
		metrics:   orderMetrics,
		logger:    log.WithField("component", "order-service"),
	}
}

// CreateItemInput — одна позиция в запросе на создание заказа.
type CreateItemInput struct {
	ProductName string
	Quantity    int32
	UnitPrice   decimal.Decimal
}

// CreateOrderInput — запрос на создание заказа.
type CreateOrderInput struct {
	CustomerID string
	Items      []CreateItemInput
}

// CreateOrder создаёт заказ: пишет заголовок в реляционное хранилище,
// затем батч позиций в документное, публикует OrderCreatedEvent и сбрасывает
// кэшированное представление. Сбой заголовка фатален; сбой батча или
// публикации возвращается вызывающему, но заголовок остаётся записанным.
func (s *Service) CreateOrder(ctx context.Context, input CreateOrderInput) (OrderView, error) {
	start := time.Now()

	order, items, err := buildOrder(input)
	if err != nil {
		return OrderView{}, err
	}

	if _, err := s.orders.Create(ctx, order); err != nil {
		s.metrics.RecordOrderCreateFailure()
		return OrderView{}, fmt.Errorf("create order header: %w", err)
	}

	if _, err := s.items.CreateMany(ctx, items); err != nil {
		s.metrics.RecordOrderCreateFailure()
		s.logger.WithError(err).WithField("order_id", order.ID).
			Error("order header committed but item batch failed")
		return OrderView{}, fmt.Errorf("create order items (header %s committed): %w", order.ID, err)
	}

	if err := s.publisher.Publish(ctx, domain.NewOrderCreatedEvent(order)); err != nil {
		s.metrics.RecordEventPublishFailure()
		s.logger.WithError(err).WithField("order_id", order.ID).
			Error("order persisted but event was not accepted by the broker")
		return OrderView{}, fmt.Errorf("publish order created event (order %s persisted): %w", order.ID, err)
	}
	s.metrics.RecordEventPublished()

	s.cache.Remove(ctx, cacheKey(order.ID))

	s.metrics.RecordOrderCreated()
	s.metrics.RecordCreateDuration(time.Since(start))
	s.logger.WithFields(log.Fields{
		"order_id":    order.ID,
		"customer_id": order.CustomerID,
		"items":       len(items),
	}).Info("order created")

	return newOrderView(order, items), nil
}

// buildOrder валидирует вход и собирает заголовок с позициями.
// Итоговая сумма пересчитывается из позиций и нигде не принимается извне.
func buildOrder(input CreateOrderInput) (domain.Order, []domain.OrderItem, error) {
	if input.CustomerID == "" {
		return domain.Order{}, nil, domain.ErrCustomerRequired
	}
	if len(input.Items) == 0 {
		return domain.Order{}, nil, domain.ErrItemsRequired
	}

	order := domain.NewOrder(input.CustomerID)

	items := make([]domain.OrderItem, 0, len(input.Items))
	for i, in := range input.Items {
		item := domain.NewOrderItem(order.ID, in.ProductName, in.Quantity, in.UnitPrice)
		if errs := item.ValidateInvariants(); len(errs) > 0 {
			return domain.Order{}, nil, fmt.Errorf("item %d: %w", i, errors.Join(errs...))
		}
		items = append(items, item)
	}

	order.SetTotalFrom(items)
	if errs := order.ValidateInvariants(); len(errs) > 0 {
		return domain.Order{}, nil, errors.Join(errs...)
	}

	return order, items, nil
}

// GetOrder возвращает собранное представление заказа. Сначала кэш; при
// промахе — заголовок и позиции из хранилищ, затем представление кладётся
// в кэш на две минуты.
func (s *Service) GetOrder(ctx context.Context, orderID string) (OrderView, error) {
	if orderID == "" {
		return OrderView{}, domain.ErrOrderIDRequired
	}

	key := cacheKey(orderID)

	var cached OrderView
	if s.cache.Get(ctx, key, &cached) {
		s.metrics.RecordCacheHit()
		return cached, nil
	}
	s.metrics.RecordCacheMiss()

	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return OrderView{}, fmt.Errorf("get order header: %w", err)
	}
	items, err := s.items.GetByOrderID(ctx, orderID)
	if err != nil {
		return OrderView{}, fmt.Errorf("get order items: %w", err)
	}

	view := newOrderView(order, items)
	s.cache.Set(ctx, key, view, cacheTTL)

	return view, nil
}

// ListOrders возвращает сводки всех заказов, свежие первыми: имя и email
// клиента из хранилища пользователей плюс позиции заказа. Для неизвестного
// клиента и имя, и email заменяются маркером "Unknown".
func (s *Service) ListOrders(ctx context.Context) ([]OrderSummary, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration("list_orders", time.Since(start)) }()

	orders, err := s.orders.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	// Клиент резолвится один раз, а не на каждый его заказ.
	customers := make(map[string]customerInfo)
	summaries := make([]OrderSummary, 0, len(orders))
	for _, order := range orders {
		customer, ok := customers[order.CustomerID]
		if !ok {
			customer = s.resolveCustomer(ctx, order.CustomerID)
			customers[order.CustomerID] = customer
		}

		items, err := s.items.GetByOrderID(ctx, order.ID)
		if err != nil {
			return nil, fmt.Errorf("get order items: %w", err)
		}

		summaries = append(summaries, newOrderSummary(order, customer, items))
	}

	return summaries, nil
}

type customerInfo struct {
	name  string
	email string
}

func (s *Service) resolveCustomer(ctx context.Context, customerID string) customerInfo {
	user, err := s.users.GetByID(ctx, customerID)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.logger.WithError(err).WithField("customer_id", customerID).
				Warn("customer lookup failed, falling back to Unknown")
		}
		return customerInfo{name: unknownCustomer, email: unknownCustomer}
	}
	return customerInfo{name: user.Username, email: user.Email}
}

// ConfirmOrder переводит заказ pending -> confirmed.
func (s *Service) ConfirmOrder(ctx context.Context, orderID string) (OrderView, error) {
	return s.transition(ctx, orderID, "confirm_order", (*domain.Order).Confirm)
}

// DeliverOrder переводит заказ confirmed -> delivered.
func (s *Service) DeliverOrder(ctx context.Context, orderID string) (OrderView, error) {
	return s.transition(ctx, orderID, "deliver_order", (*domain.Order).Deliver)
}

// CancelOrder отменяет заказ из любого статуса, кроме delivered.
func (s *Service) CancelOrder(ctx context.Context, orderID string) (OrderView, error) {
	return s.transition(ctx, orderID, "cancel_order", (*domain.Order).Cancel)
}

func (s *Service) transition(ctx context.Context, orderID, operation string, apply func(*domain.Order) error) (OrderView, error) {
	if orderID == "" {
		return OrderView{}, domain.ErrOrderIDRequired
	}

	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration(operation, time.Since(start)) }()

	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return OrderView{}, fmt.Errorf("get order header: %w", err)
	}

	if err := apply(&order); err != nil {
		return OrderView{}, err
	}

	if _, err := s.orders.Update(ctx, order); err != nil {
		return OrderView{}, fmt.Errorf("update order header: %w", err)
	}
	s.metrics.RecordStatusChange(string(order.Status))

	// Кэш хранит устаревший статус — сбрасываем.
	s.cache.Remove(ctx, cacheKey(order.ID))

	items, err := s.items.GetByOrderID(ctx, orderID)
	if err != nil {
		return OrderView{}, fmt.Errorf("get order items: %w", err)
	}

	s.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"status":   order.Status,
	}).Info("order status changed")

	return newOrderView(order, items), nil
}

// DeleteOrder удаляет заказ целиком: позиции, заголовок и кэшированное
// представление. Отсутствующий заказ — ErrOrderNotFound.
func (s *Service) DeleteOrder(ctx context.Context, orderID string) error {
	if orderID == "" {
		return domain.ErrOrderIDRequired
	}

	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration("delete_order", time.Since(start)) }()

	if _, err := s.orders.Get(ctx, orderID); err != nil {
		return fmt.Errorf("get order header: %w", err)
	}

	if err := s.items.DeleteByOrderID(ctx, orderID); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	if err := s.orders.Delete(ctx, orderID); err != nil {
		return fmt.Errorf("delete order header: %w", err)
	}
	s.cache.Remove(ctx, cacheKey(orderID))

	s.metrics.RecordOrderDeleted()
	s.logger.WithField("order_id", orderID).Info("order deleted")

	return nil
}
