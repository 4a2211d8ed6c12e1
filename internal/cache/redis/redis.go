package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/venicelabs/orders/internal/domain"
)

const opTimeout = 2 * time.Second

// Cache — кэш представлений заказов поверх Redis. Значения сериализуются
// в JSON. Любой сбой Redis трактуется как промах: чтение и запись никогда
// не возвращают ошибку наружу, сбой лишь логируется.
type Cache struct {
	client *redis.Client
	logger *log.Entry
}

// Open подключается к Redis и проверяет доступность сервера.
func Open(ctx context.Context, addr, password string, db int) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return New(client), nil
}

// New оборачивает готовый клиент; подключение остаётся за вызывающим.
func New(client *redis.Client) *Cache {
	return &Cache{
		client: client,
		logger: log.WithField("component", "redis_cache"),
	}
}

func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	payload, err := c.client.Get(opCtx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WithError(err).WithField("key", key).Warn("cache get failed, treating as miss")
		}
		return false
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("cache entry is malformed, treating as miss")
		return false
	}

	return true
}

func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	payload, err := json.Marshal(value)
	if err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("cache value is not serializable, skipping")
		return
	}

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := c.client.Set(opCtx, key, payload, ttl).Err(); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("cache set failed, skipping")
	}
}

func (c *Cache) Remove(ctx context.Context, key string) {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := c.client.Del(opCtx, key).Err(); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("cache remove failed, skipping")
	}
}

// Ping проверяет доступность Redis; используется health-эндпоинтом.
func (c *Cache) Ping(ctx context.Context) error {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	return c.client.Ping(opCtx).Err()
}

// Close разрывает подключение.
func (c *Cache) Close() error {
	return c.client.Close()
}

var _ domain.Cache = (*Cache)(nil)
