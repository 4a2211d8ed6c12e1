package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus описывает жизненный цикл заказа.
type OrderStatus string

const (
	// OrderStatusPending — заказ создан, но ещё не подтверждён.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusConfirmed — заказ подтверждён и ожидает доставки.
	OrderStatusConfirmed OrderStatus = "confirmed"
	// OrderStatusCancelled — заказ отменён до доставки.
	OrderStatusCancelled OrderStatus = "cancelled"
	// OrderStatusDelivered — заказ доставлен; терминальный статус.
	OrderStatusDelivered OrderStatus = "delivered"
)

// Order — заголовок заказа. Хранится в реляционной базе отдельно от позиций
// (позиции лежат в документном хранилище) и является единственным источником
// истины для статуса и итоговой суммы.
type Order struct {
	ID          string
	CustomerID  string
	Status      OrderStatus
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
}

// NewOrder создаёт заголовок с новым идентификатором, статусом pending
// и текущим временем в UTC.
func NewOrder(customerID string) Order {
	return Order{
		ID:          uuid.NewString(),
		CustomerID:  customerID,
		Status:      OrderStatusPending,
		TotalAmount: decimal.Zero,
		CreatedAt:   time.Now().UTC(),
	}
}

// Confirm переводит заказ pending -> confirmed.
func (o *Order) Confirm() error {
	if o.Status != OrderStatusPending {
		return fmt.Errorf("confirm order in status %q: %w", o.Status, ErrInvalidStateTransition)
	}
	o.Status = OrderStatusConfirmed
	return nil
}

// Deliver переводит заказ confirmed -> delivered.
func (o *Order) Deliver() error {
	if o.Status != OrderStatusConfirmed {
		return fmt.Errorf("deliver order in status %q: %w", o.Status, ErrInvalidStateTransition)
	}
	o.Status = OrderStatusDelivered
	return nil
}

// Cancel отменяет заказ из любого статуса, кроме delivered.
func (o *Order) Cancel() error {
	if o.Status == OrderStatusDelivered {
		return fmt.Errorf("cancel delivered order: %w", ErrInvalidStateTransition)
	}
	o.Status = OrderStatusCancelled
	return nil
}

// SetTotalFrom пересчитывает итоговую сумму как Σ(qty × unit price)
// по переданным позициям.
func (o *Order) SetTotalFrom(items []OrderItem) {
	o.TotalAmount = TotalAmount(items)
}

// ValidateInvariants проверяет базовые инварианты заголовка.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.ID == "" {
		errs = append(errs, ErrOrderIDRequired)
	}
	if o.CustomerID == "" {
		errs = append(errs, ErrCustomerRequired)
	}
	if o.TotalAmount.IsNegative() {
		errs = append(errs, ErrAmountNegative)
	}

	return errs
}
