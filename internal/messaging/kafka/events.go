package kafka

import (
	"reflect"
	"strings"
)

// Topics для Kafka
const (
	TopicOrderEvents = "venice.orders.events"
)

// routingKey строит ключ сообщения из имени типа события:
// OrderCreatedEvent -> "order.ordercreatedevent". Ключ одновременно
// задаёт партицию, поэтому события одного типа сохраняют порядок.
func routingKey(event any) string {
	t := reflect.TypeOf(event)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "order.unknown"
	}

	name := strings.ToLower(t.Name())
	if name == "" {
		return "order.unknown"
	}
	return "order." + name
}
