package mongodb

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venicelabs/orders/internal/domain"
)

func TestItemDocumentRoundTrip(t *testing.T) {
	item := domain.OrderItem{
		ID:          uuid.NewString(),
		OrderID:     uuid.NewString(),
		ProductName: "Espresso Machine",
		Quantity:    2,
		UnitPrice:   decimal.RequireFromString("149.5"),
	}

	doc, err := toDocument(item)
	if err != nil {
		t.Fatalf("to document: %v", err)
	}
	if doc.UnitPrice != "149.50" {
		t.Fatalf("unit price must be stored with two decimal places, got %q", doc.UnitPrice)
	}
	if doc.ID.String() != item.ID || doc.OrderID.String() != item.OrderID {
		t.Fatalf("id mismatch in document: %+v", doc)
	}

	back, err := doc.toDomain()
	if err != nil {
		t.Fatalf("to domain: %v", err)
	}
	if back.ID != item.ID || back.OrderID != item.OrderID || back.ProductName != item.ProductName || back.Quantity != item.Quantity {
		t.Fatalf("roundtrip mismatch: %+v", back)
	}
	if !back.UnitPrice.Equal(item.UnitPrice) {
		t.Fatalf("unit price mismatch: got=%s want=%s", back.UnitPrice, item.UnitPrice)
	}
}

func TestToDocumentRejectsMalformedIDs(t *testing.T) {
	item := domain.OrderItem{
		ID:          "not-a-uuid",
		OrderID:     uuid.NewString(),
		ProductName: "Grinder",
		Quantity:    1,
		UnitPrice:   decimal.RequireFromString("10.00"),
	}
	if _, err := toDocument(item); err == nil {
		t.Fatal("expected error for malformed item id")
	}

	item.ID = uuid.NewString()
	item.OrderID = "also-not-a-uuid"
	if _, err := toDocument(item); err == nil {
		t.Fatal("expected error for malformed order id")
	}
}

func TestItemDocumentRejectsMalformedPrice(t *testing.T) {
	doc := itemDocument{
		ID:        uuid.New(),
		OrderID:   uuid.New(),
		Quantity:  1,
		UnitPrice: "ten bucks",
	}
	if _, err := doc.toDomain(); err == nil {
		t.Fatal("expected error for malformed unit price")
	}
}
