package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config описывает настройки запуска приложения. Адреса внешних систем
// опциональны: незаполненный адрес означает работу на процессных заменах.
type Config struct {
	HTTPAddr    string
	MetricsAddr string

	PostgresDSN string

	MongoURI      string
	MongoDatabase string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaBrokers []string

	JWTSecret string
	TokenTTL  time.Duration
}

// DefaultConfig возвращает конфигурацию для локального запуска без
// внешних систем.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:      ":8080",
		MetricsAddr:   ":9090",
		MongoDatabase: "venice_orders",
		JWTSecret:     "dev-secret-change-me",
		TokenTTL:      time.Hour,
	}
}

// LoadConfig читает конфигурацию из окружения поверх значений по умолчанию.
// Переменные используют префикс VENICE_.
func LoadConfig() Config {
	cfg := DefaultConfig()

	cfg.HTTPAddr = envOr("VENICE_HTTP_ADDR", cfg.HTTPAddr)
	cfg.MetricsAddr = envOr("VENICE_METRICS_ADDR", cfg.MetricsAddr)

	cfg.PostgresDSN = envOr("VENICE_POSTGRES_DSN", cfg.PostgresDSN)

	cfg.MongoURI = envOr("VENICE_MONGO_URI", cfg.MongoURI)
	cfg.MongoDatabase = envOr("VENICE_MONGO_DB", cfg.MongoDatabase)

	cfg.RedisAddr = envOr("VENICE_REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = envOr("VENICE_REDIS_PASSWORD", cfg.RedisPassword)
	if raw := strings.TrimSpace(os.Getenv("VENICE_REDIS_DB")); raw != "" {
		if db, err := strconv.Atoi(raw); err == nil {
			cfg.RedisDB = db
		}
	}

	if raw := strings.TrimSpace(os.Getenv("VENICE_KAFKA_BROKERS")); raw != "" {
		for _, broker := range strings.Split(raw, ",") {
			if broker = strings.TrimSpace(broker); broker != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, broker)
			}
		}
	}

	cfg.JWTSecret = envOr("VENICE_JWT_SECRET", cfg.JWTSecret)
	if raw := strings.TrimSpace(os.Getenv("VENICE_TOKEN_TTL")); raw != "" {
		if ttl, err := time.ParseDuration(raw); err == nil && ttl > 0 {
			cfg.TokenTTL = ttl
		}
	}

	return cfg
}

func envOr(name, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(name)); value != "" {
		return value
	}
	return fallback
}
