package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	log "github.com/sirupsen/logrus"

	"github.com/venicelabs/orders/internal/domain"
)

func newTestPublisher(t *testing.T) (*Publisher, *mocks.SyncProducer) {
	t.Helper()

	mockProducer := mocks.NewSyncProducer(t, nil)
	publisher := &Publisher{
		producer: mockProducer,
		topic:    TopicOrderEvents,
		logger:   log.WithField("component", "kafka-publisher-test"),
	}
	return publisher, mockProducer
}

func TestPublisher_Publish(t *testing.T) {
	publisher, mockProducer := newTestPublisher(t)

	event := domain.OrderCreatedEvent{
		OrderID:    "order-123",
		CustomerID: "cust-1",
		Status:     domain.OrderStatusPending,
		CreatedAt:  time.Now().UTC(),
	}

	mockProducer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != TopicOrderEvents {
			t.Errorf("unexpected topic: %s", msg.Topic)
		}

		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "order.ordercreatedevent" {
			t.Errorf("unexpected routing key: %s", key)
		}

		raw, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var decoded domain.OrderCreatedEvent
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return err
		}
		if decoded.OrderID != event.OrderID || decoded.CustomerID != event.CustomerID {
			t.Errorf("unexpected event payload: %+v", decoded)
		}
		return nil
	})

	if err := publisher.Publish(context.Background(), event); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestPublisher_PublishBrokerError(t *testing.T) {
	publisher, mockProducer := newTestPublisher(t)

	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	err := publisher.Publish(context.Background(), domain.OrderCreatedEvent{OrderID: "order-123"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, domain.ErrPublishFailed) {
		t.Fatalf("error must match ErrPublishFailed, got %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestPublisher_PublishCanceledContext(t *testing.T) {
	publisher, mockProducer := newTestPublisher(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := publisher.Publish(ctx, domain.OrderCreatedEvent{OrderID: "order-123"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestRoutingKey(t *testing.T) {
	tests := []struct {
		name  string
		event any
		want  string
	}{
		{"struct value", domain.OrderCreatedEvent{}, "order.ordercreatedevent"},
		{"struct pointer", &domain.OrderCreatedEvent{}, "order.ordercreatedevent"},
		{"anonymous value", struct{}{}, "order.unknown"},
		{"nil event", nil, "order.unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := routingKey(tt.event); got != tt.want {
				t.Errorf("routingKey() = %q, want %q", got, tt.want)
			}
		})
	}
}
