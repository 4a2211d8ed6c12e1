package app

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("unexpected http addr: %s", cfg.HTTPAddr)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("unexpected metrics addr: %s", cfg.MetricsAddr)
	}
	if cfg.MongoDatabase != "venice_orders" {
		t.Errorf("unexpected mongo database: %s", cfg.MongoDatabase)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("unexpected token ttl: %s", cfg.TokenTTL)
	}
	if cfg.PostgresDSN != "" || cfg.MongoURI != "" || cfg.RedisAddr != "" || len(cfg.KafkaBrokers) != 0 {
		t.Error("external systems must be unset by default")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("VENICE_HTTP_ADDR", ":7000")
	t.Setenv("VENICE_POSTGRES_DSN", "postgres://venice:venice@db:5432/venice_orders")
	t.Setenv("VENICE_KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092 ,")
	t.Setenv("VENICE_REDIS_DB", "3")
	t.Setenv("VENICE_TOKEN_TTL", "30m")

	cfg := LoadConfig()

	if cfg.HTTPAddr != ":7000" {
		t.Errorf("unexpected http addr: %s", cfg.HTTPAddr)
	}
	if cfg.PostgresDSN != "postgres://venice:venice@db:5432/venice_orders" {
		t.Errorf("unexpected dsn: %s", cfg.PostgresDSN)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[0] != "kafka-1:9092" || cfg.KafkaBrokers[1] != "kafka-2:9092" {
		t.Errorf("unexpected brokers: %v", cfg.KafkaBrokers)
	}
	if cfg.RedisDB != 3 {
		t.Errorf("unexpected redis db: %d", cfg.RedisDB)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Errorf("unexpected token ttl: %s", cfg.TokenTTL)
	}
}

func TestLoadConfigIgnoresGarbage(t *testing.T) {
	t.Setenv("VENICE_REDIS_DB", "not-a-number")
	t.Setenv("VENICE_TOKEN_TTL", "-5m")

	cfg := LoadConfig()

	if cfg.RedisDB != 0 {
		t.Errorf("garbage redis db must be ignored, got %d", cfg.RedisDB)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("non-positive ttl must fall back to default, got %s", cfg.TokenTTL)
	}
}
