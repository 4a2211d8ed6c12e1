package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderCreatedEvent публикуется один раз после успешного создания заказа.
// Несёт неизменяемый снимок только что записанного заголовка; подписчики
// находятся за пределами этого сервиса.
type OrderCreatedEvent struct {
	OrderID     string          `json:"order_id"`
	CustomerID  string          `json:"customer_id"`
	Status      OrderStatus     `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewOrderCreatedEvent снимает слепок заголовка для публикации.
func NewOrderCreatedEvent(order Order) OrderCreatedEvent {
	return OrderCreatedEvent{
		OrderID:     order.ID,
		CustomerID:  order.CustomerID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		CreatedAt:   order.CreatedAt,
	}
}
