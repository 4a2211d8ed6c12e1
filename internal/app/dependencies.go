package app

import (
	"context"
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/venicelabs/orders/internal/cache/redis"
	"github.com/venicelabs/orders/internal/domain"
	"github.com/venicelabs/orders/internal/health"
	"github.com/venicelabs/orders/internal/messaging/kafka"
	"github.com/venicelabs/orders/internal/storage/memory"
	"github.com/venicelabs/orders/internal/storage/mongodb"
	"github.com/venicelabs/orders/internal/storage/postgres"
	"github.com/venicelabs/orders/internal/version"
)

// Dependencies содержит подключённые порты приложения. Каждый порт
// поднимается на реальной системе, если её адрес задан в конфигурации,
// и на процессной замене иначе.
type Dependencies struct {
	Orders    domain.OrderRepository
	Items     domain.OrderItemRepository
	Users     domain.UserRepository
	Cache     domain.Cache
	Publisher domain.EventPublisher
	Health    *health.Handler
	Logger    *log.Entry

	closers []func(ctx context.Context) error
}

// NewDependencies подключает внешние системы согласно конфигурации.
// Ошибка подключения заданной системы фатальна: молчаливый даунгрейд на
// процессную замену скрывал бы неправильную конфигурацию.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	deps := &Dependencies{
		Logger: logger,
		Health: health.NewHandler(version.String()),
	}

	if err := deps.initOrderStore(ctx, cfg); err != nil {
		return nil, err
	}
	if err := deps.initItemStore(ctx, cfg); err != nil {
		return nil, err
	}
	if err := deps.initCache(ctx, cfg); err != nil {
		return nil, err
	}
	if err := deps.initPublisher(cfg); err != nil {
		return nil, err
	}

	return deps, nil
}

func (d *Dependencies) initOrderStore(ctx context.Context, cfg Config) error {
	if cfg.PostgresDSN == "" {
		d.Logger.Warn("postgres dsn is not set, orders and users live in process memory")
		d.Orders = memory.NewOrderRepository()
		d.Users = memory.NewUserRepository()
		return nil
	}

	store, err := postgres.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}

	d.Orders = postgres.NewOrderRepository(store)
	d.Users = postgres.NewUserRepository(store)
	d.Health.Register("postgres", store.Ping)
	d.closers = append(d.closers, func(context.Context) error { return store.Close() })
	d.Logger.Info("postgres connected")
	return nil
}

func (d *Dependencies) initItemStore(ctx context.Context, cfg Config) error {
	if cfg.MongoURI == "" {
		d.Logger.Warn("mongodb uri is not set, order items live in process memory")
		d.Items = memory.NewOrderItemRepository()
		return nil
	}

	store, err := mongodb.Open(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return fmt.Errorf("open mongodb: %w", err)
	}

	d.Items = mongodb.NewOrderItemRepository(store)
	d.Health.Register("mongodb", store.Ping)
	d.closers = append(d.closers, store.Close)
	d.Logger.Info("mongodb connected")
	return nil
}

func (d *Dependencies) initCache(ctx context.Context, cfg Config) error {
	if cfg.RedisAddr == "" {
		d.Logger.Warn("redis addr is not set, order views are cached in process memory")
		d.Cache = memory.NewCache()
		return nil
	}

	cache, err := redis.Open(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("open redis: %w", err)
	}

	d.Cache = cache
	d.Health.Register("redis", cache.Ping)
	d.closers = append(d.closers, func(context.Context) error { return cache.Close() })
	d.Logger.Info("redis connected")
	return nil
}

func (d *Dependencies) initPublisher(cfg Config) error {
	if len(cfg.KafkaBrokers) == 0 {
		d.Logger.Warn("kafka brokers are not set, order events are only logged")
		d.Publisher = &logPublisher{logger: log.WithField("component", "log-publisher")}
		return nil
	}

	publisher, err := kafka.NewPublisher(cfg.KafkaBrokers)
	if err != nil {
		return fmt.Errorf("create kafka publisher: %w", err)
	}

	d.Publisher = publisher
	d.closers = append(d.closers, func(context.Context) error { return publisher.Close() })
	d.Logger.WithField("brokers", cfg.KafkaBrokers).Info("kafka publisher initialized")
	return nil
}

// Close освобождает подключения в обратном порядке инициализации.
func (d *Dependencies) Close(ctx context.Context) {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](ctx); err != nil {
			d.Logger.WithError(err).Warn("dependency close failed")
		}
	}
}

// logPublisher пишет события в лог вместо брокера; используется при запуске
// без Kafka.
type logPublisher struct {
	logger *log.Entry
}

func (p *logPublisher) Publish(_ context.Context, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	p.logger.WithField("event", string(payload)).Info("order event")
	return nil
}

var _ domain.EventPublisher = (*logPublisher)(nil)
