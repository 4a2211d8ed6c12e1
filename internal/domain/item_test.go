package domain_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/venicelabs/orders/internal/domain"
)

func TestOrderItemTotalPrice(t *testing.T) {
	item := domain.NewOrderItem("order-1", "Widget", 2, decimal.RequireFromString("10.00"))

	if got := item.TotalPrice().StringFixed(2); got != "20.00" {
		t.Fatalf("expected 20.00, got %s", got)
	}
	if item.ID == "" {
		t.Fatal("expected generated item id")
	}
	if item.OrderID != "order-1" {
		t.Fatalf("unexpected order id: %s", item.OrderID)
	}
}

func TestTotalAmount(t *testing.T) {
	items := []domain.OrderItem{
		domain.NewOrderItem("order-1", "Widget", 2, decimal.RequireFromString("10.00")),
		domain.NewOrderItem("order-1", "Gadget", 1, decimal.RequireFromString("0.99")),
	}

	if got := domain.TotalAmount(items).StringFixed(2); got != "20.99" {
		t.Fatalf("expected 20.99, got %s", got)
	}
	if got := domain.TotalAmount(nil).StringFixed(2); got != "0.00" {
		t.Fatalf("expected 0.00 for empty items, got %s", got)
	}
}

func TestOrderItemValidateInvariants(t *testing.T) {
	cases := []struct {
		name string
		mut  func(i *domain.OrderItem)
		want error
	}{
		{name: "no order id", mut: func(i *domain.OrderItem) { i.OrderID = "" }, want: domain.ErrOrderIDRequired},
		{name: "no product name", mut: func(i *domain.OrderItem) { i.ProductName = "" }, want: domain.ErrProductNameRequired},
		{name: "zero qty", mut: func(i *domain.OrderItem) { i.Quantity = 0 }, want: domain.ErrItemQtyInvalid},
		{name: "zero price", mut: func(i *domain.OrderItem) { i.UnitPrice = decimal.Zero }, want: domain.ErrItemPriceInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := domain.NewOrderItem("order-1", "Widget", 1, decimal.RequireFromString("1.00"))
			tc.mut(&item)

			errs := item.ValidateInvariants()
			if len(errs) == 0 {
				t.Fatal("expected validation errors")
			}
			found := false
			for _, err := range errs {
				if errors.Is(err, tc.want) {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected %v among %v", tc.want, errs)
			}
		})
	}

	item := domain.NewOrderItem("order-1", "Widget", 1, decimal.RequireFromString("1.00"))
	if errs := item.ValidateInvariants(); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}
