package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/venicelabs/orders/internal/domain"
)

const (
	itemsCollection = "order_items"

	opTimeout = 5 * time.Second
)

// itemDocument — форма хранения позиции заказа. Идентификаторы пишутся
// строками через реестр кодеков, цена — десятичной строкой с двумя знаками.
type itemDocument struct {
	ID          uuid.UUID `bson:"_id"`
	OrderID     uuid.UUID `bson:"order_id"`
	ProductName string    `bson:"product_name"`
	Quantity    int32     `bson:"quantity"`
	UnitPrice   string    `bson:"unit_price"`
}

type itemRepository struct {
	col *mongo.Collection
}

// NewOrderItemRepository создаёт репозиторий позиций заказов поверх MongoDB.
func NewOrderItemRepository(store *Store) domain.OrderItemRepository {
	return &itemRepository{col: store.Collection(itemsCollection)}
}

func (r *itemRepository) GetByOrderID(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	oid, err := uuid.Parse(orderID)
	if err != nil {
		return nil, fmt.Errorf("parse order id %q: %w", orderID, err)
	}

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := r.col.Find(opCtx, bson.M{"order_id": oid}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, domain.Unavailable("find order items", err)
	}

	var docs []itemDocument
	if err := cursor.All(opCtx, &docs); err != nil {
		return nil, domain.Unavailable("decode order items", err)
	}

	items := make([]domain.OrderItem, 0, len(docs))
	for _, doc := range docs {
		item, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func (r *itemRepository) Create(ctx context.Context, item domain.OrderItem) (domain.OrderItem, error) {
	doc, err := toDocument(item)
	if err != nil {
		return domain.OrderItem{}, err
	}

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(opCtx, doc); err != nil {
		return domain.OrderItem{}, domain.Unavailable("insert order item", err)
	}

	return item, nil
}

func (r *itemRepository) CreateMany(ctx context.Context, items []domain.OrderItem) ([]domain.OrderItem, error) {
	if len(items) == 0 {
		return []domain.OrderItem{}, nil
	}

	docs := make([]any, 0, len(items))
	for _, item := range items {
		doc, err := toDocument(item)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.col.InsertMany(opCtx, docs); err != nil {
		return nil, domain.Unavailable("insert order items", err)
	}

	return items, nil
}

func (r *itemRepository) DeleteByOrderID(ctx context.Context, orderID string) error {
	oid, err := uuid.Parse(orderID)
	if err != nil {
		return fmt.Errorf("parse order id %q: %w", orderID, err)
	}

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(opCtx, bson.M{"order_id": oid}); err != nil {
		return domain.Unavailable("delete order items", err)
	}

	return nil
}

func toDocument(item domain.OrderItem) (itemDocument, error) {
	id, err := uuid.Parse(item.ID)
	if err != nil {
		return itemDocument{}, fmt.Errorf("parse item id %q: %w", item.ID, err)
	}
	orderID, err := uuid.Parse(item.OrderID)
	if err != nil {
		return itemDocument{}, fmt.Errorf("parse order id %q: %w", item.OrderID, err)
	}

	return itemDocument{
		ID:          id,
		OrderID:     orderID,
		ProductName: item.ProductName,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice.StringFixed(2),
	}, nil
}

func (d itemDocument) toDomain() (domain.OrderItem, error) {
	price, err := decimal.NewFromString(d.UnitPrice)
	if err != nil {
		return domain.OrderItem{}, fmt.Errorf("parse unit price %q: %w", d.UnitPrice, err)
	}

	return domain.OrderItem{
		ID:          d.ID.String(),
		OrderID:     d.OrderID.String(),
		ProductName: d.ProductName,
		Quantity:    d.Quantity,
		UnitPrice:   price,
	}, nil
}

var _ domain.OrderItemRepository = (*itemRepository)(nil)
