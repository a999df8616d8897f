package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/multikonnect/listing-service/pkg/config"
)

// Config holds all configuration for the listing service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"LISTING_HTTP_PORT" envDefault:"8020"`

	// PostgreSQL (published listings and stores)
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"marketplace"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"marketplace_secret"`
	PostgresDB   string `env:"LISTING_DB_NAME" envDefault:"listing_db"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// Redis (wizard drafts)
	RedisHost string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Draft TTL in hours (default: 30 days). Drafts untouched for this long
	// expire from Redis.
	DraftTTL int `env:"LISTING_DRAFT_TTL_HOURS" envDefault:"720"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Catalog service (cross-vendor search and import)
	CatalogBaseURL string `env:"CATALOG_BASE_URL" envDefault:"http://localhost:8002"`

	// Tracing
	TracingEnabled bool   `env:"OTEL_TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint   string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load listing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.DraftTTL < 1 {
		return fmt.Errorf("invalid draft TTL: %d hours", c.DraftTTL)
	}
	return nil
}

// DraftTTLDuration returns the draft TTL as a duration.
func (c *Config) DraftTTLDuration() time.Duration {
	return time.Duration(c.DraftTTL) * time.Hour
}
