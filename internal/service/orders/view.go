package orders

import (
	"strings"
	"time"

	"github.com/venicelabs/orders/internal/domain"
)

// unknownCustomer подставляется в сводку, когда клиент не найден
// в хранилище пользователей.
const unknownCustomer = "Unknown"

// OrderItemView — позиция заказа в собранном представлении.
type OrderItemView struct {
	ID          string `json:"id"`
	ProductName string `json:"product_name"`
	Quantity    int32  `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	TotalPrice  string `json:"total_price"`
}

// OrderView — заказ вместе с позициями; именно эта форма кэшируется
// и отдаётся наружу. Денежные значения сериализуются строками с двумя
// знаками после запятой.
type OrderView struct {
	ID          string          `json:"id"`
	CustomerID  string          `json:"customer_id"`
	Status      string          `json:"status"`
	TotalAmount string          `json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	Items       []OrderItemView `json:"items"`
}

// OrderSummary — строка списка заказов: человекочитаемый номер, имя и
// email клиента, позиции. Для неизвестного клиента имя и email заменяются
// маркером "Unknown".
type OrderSummary struct {
	ID            string          `json:"id"`
	Number        string          `json:"number"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	Status        string          `json:"status"`
	TotalAmount   string          `json:"total_amount"`
	CreatedAt     time.Time       `json:"created_at"`
	Items         []OrderItemView `json:"items"`
}

func newItemViews(items []domain.OrderItem) []OrderItemView {
	views := make([]OrderItemView, 0, len(items))
	for _, item := range items {
		views = append(views, OrderItemView{
			ID:          item.ID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			TotalPrice:  item.TotalPrice().StringFixed(2),
		})
	}
	return views
}

func newOrderView(order domain.Order, items []domain.OrderItem) OrderView {
	return OrderView{
		ID:          order.ID,
		CustomerID:  order.CustomerID,
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount.StringFixed(2),
		CreatedAt:   order.CreatedAt,
		Items:       newItemViews(items),
	}
}

func newOrderSummary(order domain.Order, customer customerInfo, items []domain.OrderItem) OrderSummary {
	return OrderSummary{
		ID:            order.ID,
		Number:        orderNumber(order.ID),
		CustomerName:  customer.name,
		CustomerEmail: customer.email,
		Status:        string(order.Status),
		TotalAmount:   order.TotalAmount.StringFixed(2),
		CreatedAt:     order.CreatedAt,
		Items:         newItemViews(items),
	}
}

// orderNumber строит номер вида ORD-XXXXXXXX из первых восьми hex-символов
// идентификатора без дефисов, в верхнем регистре.
func orderNumber(orderID string) string {
	compact := strings.ReplaceAll(orderID, "-", "")
	if len(compact) > 8 {
		compact = compact[:8]
	}
	return "ORD-" + strings.ToUpper(compact)
}
