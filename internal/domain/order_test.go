package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/venicelabs/orders/internal/domain"
)

func TestNewOrder_Defaults(t *testing.T) {
	before := time.Now().UTC()
	order := domain.NewOrder("customer-1")
	after := time.Now().UTC()

	if order.ID == "" {
		t.Fatal("expected generated order id")
	}
	if order.Status != domain.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", order.Status)
	}
	if order.CustomerID != "customer-1" {
		t.Fatalf("unexpected customer id: %s", order.CustomerID)
	}
	if order.CreatedAt.Before(before) || order.CreatedAt.After(after) {
		t.Fatalf("created_at %v is outside [%v, %v]", order.CreatedAt, before, after)
	}
	if order.CreatedAt.Location() != time.UTC {
		t.Fatal("created_at must be in UTC")
	}
	if !order.TotalAmount.IsZero() {
		t.Fatalf("expected zero total, got %s", order.TotalAmount)
	}
}

func TestOrderTransitions(t *testing.T) {
	cases := []struct {
		name    string
		from    domain.OrderStatus
		apply   func(o *domain.Order) error
		want    domain.OrderStatus
		wantErr bool
	}{
		{name: "confirm from pending", from: domain.OrderStatusPending, apply: (*domain.Order).Confirm, want: domain.OrderStatusConfirmed},
		{name: "confirm from confirmed", from: domain.OrderStatusConfirmed, apply: (*domain.Order).Confirm, wantErr: true},
		{name: "confirm from cancelled", from: domain.OrderStatusCancelled, apply: (*domain.Order).Confirm, wantErr: true},
		{name: "confirm from delivered", from: domain.OrderStatusDelivered, apply: (*domain.Order).Confirm, wantErr: true},
		{name: "deliver from confirmed", from: domain.OrderStatusConfirmed, apply: (*domain.Order).Deliver, want: domain.OrderStatusDelivered},
		{name: "deliver from pending", from: domain.OrderStatusPending, apply: (*domain.Order).Deliver, wantErr: true},
		{name: "deliver from cancelled", from: domain.OrderStatusCancelled, apply: (*domain.Order).Deliver, wantErr: true},
		{name: "cancel from pending", from: domain.OrderStatusPending, apply: (*domain.Order).Cancel, want: domain.OrderStatusCancelled},
		{name: "cancel from confirmed", from: domain.OrderStatusConfirmed, apply: (*domain.Order).Cancel, want: domain.OrderStatusCancelled},
		{name: "cancel from cancelled", from: domain.OrderStatusCancelled, apply: (*domain.Order).Cancel, want: domain.OrderStatusCancelled},
		{name: "cancel from delivered", from: domain.OrderStatusDelivered, apply: (*domain.Order).Cancel, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := domain.NewOrder("customer-1")
			order.Status = tc.from

			err := tc.apply(&order)
			if tc.wantErr {
				if !errors.Is(err, domain.ErrInvalidStateTransition) {
					t.Fatalf("expected ErrInvalidStateTransition, got %v", err)
				}
				// Статус не должен меняться при отклонённом переходе.
				if order.Status != tc.from {
					t.Fatalf("status changed on rejected transition: %s", order.Status)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if order.Status != tc.want {
				t.Fatalf("expected status %s, got %s", tc.want, order.Status)
			}
		})
	}
}

func TestOrderSetTotalFrom(t *testing.T) {
	order := domain.NewOrder("customer-1")
	items := []domain.OrderItem{
		domain.NewOrderItem(order.ID, "Widget", 2, decimal.RequireFromString("10.00")),
		domain.NewOrderItem(order.ID, "Gadget", 3, decimal.RequireFromString("5.25")),
	}

	order.SetTotalFrom(items)

	if got := order.TotalAmount.StringFixed(2); got != "35.75" {
		t.Fatalf("expected total 35.75, got %s", got)
	}
}

func TestOrderValidateInvariants(t *testing.T) {
	order := domain.NewOrder("")
	errs := order.ValidateInvariants()
	if len(errs) != 1 || !errors.Is(errs[0], domain.ErrCustomerRequired) {
		t.Fatalf("expected customer required error, got %v", errs)
	}

	ok := domain.NewOrder("customer-1")
	if errs := ok.ValidateInvariants(); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}
