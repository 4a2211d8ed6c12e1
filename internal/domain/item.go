package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem — одна позиция заказа. Позиции создаются один раз при создании
// заказа и хранятся в документном хранилище отдельно от заголовка; ссылка
// OrderID не обеспечивается join'ом на уровне базы.
type OrderItem struct {
	ID          string
	OrderID     string
	ProductName string
	Quantity    int32
	UnitPrice   decimal.Decimal
}

// NewOrderItem создаёт позицию с новым идентификатором.
// Идентификатор генерируется до записи в хранилище, чтобы повторная отправка
// батча не приводила к дублированию позиций.
func NewOrderItem(orderID, productName string, quantity int32, unitPrice decimal.Decimal) OrderItem {
	return OrderItem{
		ID:          uuid.NewString(),
		OrderID:     orderID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
	}
}

// TotalPrice возвращает производную стоимость позиции: qty × unit price.
// Значение никогда не хранится отдельно от своих составляющих.
func (i OrderItem) TotalPrice() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt32(i.Quantity)).Round(2)
}

// ValidateInvariants проверяет инварианты позиции.
func (i OrderItem) ValidateInvariants() []error {
	var errs []error

	if i.OrderID == "" {
		errs = append(errs, ErrOrderIDRequired)
	}
	if i.ProductName == "" {
		errs = append(errs, ErrProductNameRequired)
	}
	if i.Quantity <= 0 {
		errs = append(errs, ErrItemQtyInvalid)
	}
	if !i.UnitPrice.IsPositive() {
		errs = append(errs, ErrItemPriceInvalid)
	}

	return errs
}

// TotalAmount суммирует qty × unit price по позициям с точностью в 2 знака.
func TotalAmount(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.TotalPrice())
	}
	return total.Round(2)
}
