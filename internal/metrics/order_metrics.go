package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics содержит метрики сервиса заказов.
type OrderMetrics struct {
	// Счётчики операций
	ordersCreated       prometheus.Counter
	orderCreateFailures prometheus.Counter
	ordersDeleted       prometheus.Counter
	statusChanges       *prometheus.CounterVec

	// Кэш представлений заказов
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter

	// Публикация событий
	eventsPublished      prometheus.Counter
	eventPublishFailures prometheus.Counter

	// Гистограммы времени выполнения
	createDuration    prometheus.Histogram
	operationDuration *prometheus.HistogramVec
}

// NewOrderMetrics создаёт и регистрирует метрики в реестре по умолчанию.
func NewOrderMetrics() *OrderMetrics {
	return newOrderMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newOrderMetricsWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OrderMetrics{
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "venice_orders_created_total",
			Help: "Total number of orders created",
		}),
		orderCreateFailures: registerCounter(registerer, prometheus.CounterOpts{
			Name: "venice_orders_create_failures_total",
			Help: "Total number of failed order creations",
		}),
		ordersDeleted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "venice_orders_deleted_total",
			Help: "Total number of orders deleted",
		}),
		statusChanges: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "venice_orders_status_changes_total",
			Help: "Total number of order status transitions",
		}, []string{"status"}),
		cacheHits: registerCounter(registerer, prometheus.CounterOpts{
			Name: "venice_orders_cache_hits_total",
			Help: "Total number of order view cache hits",
		}),
		cacheMisses: registerCounter(registerer, prometheus.CounterOpts{
			Name: "venice_orders_cache_misses_total",
			Help: "Total number of order view cache misses",
		}),
		eventsPublished: registerCounter(registerer, prometheus.CounterOpts{
			Name: "venice_orders_events_published_total",
			Help: "Total number of order events published to the broker",
		}),
		eventPublishFailures: registerCounter(registerer, prometheus.CounterOpts{
			Name: "venice_orders_event_publish_failures_total",
			Help: "Total number of order events the broker did not accept",
		}),
		createDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "venice_orders_create_duration_seconds",
			Help:    "Duration of the order creation pipeline in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		operationDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "venice_orders_operation_duration_seconds",
			Help:    "Duration of individual order operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"operation"}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordOrderCreated увеличивает счётчик созданных заказов.
func (m *OrderMetrics) RecordOrderCreated() {
	m.ordersCreated.Inc()
}

// RecordOrderCreateFailure увеличивает счётчик неудачных созданий.
func (m *OrderMetrics) RecordOrderCreateFailure() {
	m.orderCreateFailures.Inc()
}

// RecordOrderDeleted увеличивает счётчик удалённых заказов.
func (m *OrderMetrics) RecordOrderDeleted() {
	m.ordersDeleted.Inc()
}

// RecordStatusChange увеличивает счётчик переходов в указанный статус.
func (m *OrderMetrics) RecordStatusChange(status string) {
	m.statusChanges.WithLabelValues(status).Inc()
}

// RecordCacheHit увеличивает счётчик попаданий в кэш.
func (m *OrderMetrics) RecordCacheHit() {
	m.cacheHits.Inc()
}

// RecordCacheMiss увеличивает счётчик промахов кэша.
func (m *OrderMetrics) RecordCacheMiss() {
	m.cacheMisses.Inc()
}

// RecordEventPublished увеличивает счётчик опубликованных событий.
func (m *OrderMetrics) RecordEventPublished() {
	m.eventsPublished.Inc()
}

// RecordEventPublishFailure увеличивает счётчик непринятых брокером событий.
func (m *OrderMetrics) RecordEventPublishFailure() {
	m.eventPublishFailures.Inc()
}

// RecordCreateDuration записывает время конвейера создания заказа.
func (m *OrderMetrics) RecordCreateDuration(duration time.Duration) {
	m.createDuration.Observe(duration.Seconds())
}

// RecordOperationDuration записывает время выполнения операции.
func (m *OrderMetrics) RecordOperationDuration(operation string, duration time.Duration) {
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
