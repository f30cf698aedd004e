package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config defines ingestion engine configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"INGESTION_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN            string `yaml:"dsn" env:"INGESTION_POSTGRES_DSN"`
		ConnectRetries int    `yaml:"connect_retries" env:"INGESTION_POSTGRES_CONNECT_RETRIES"`
		RetryDelaySec  int    `yaml:"retry_delay_sec" env:"INGESTION_POSTGRES_RETRY_DELAY_SEC"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr" env:"INGESTION_REDIS_ADDR"`
		Password string `yaml:"password" env:"INGESTION_REDIS_PASSWORD"`
		TTLSec   int    `yaml:"ttl_sec" env:"INGESTION_REDIS_TTL_SEC"`
	} `yaml:"redis"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET"`
	} `yaml:"auth"`
}

// Load configuration from optional YAML file plus environment overrides.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8080"
	cfg.Database.ConnectRetries = 5
	cfg.Database.RetryDelaySec = 2
	cfg.Redis.TTLSec = 60

	if err := LoadInto(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, errors.New("config: database dsn required")
	}
	if cfg.Database.ConnectRetries < 1 {
		cfg.Database.ConnectRetries = 1
	}
	if cfg.Database.RetryDelaySec < 0 {
		cfg.Database.RetryDelaySec = 0
	}
	return cfg, nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// RetryDelay returns the fixed delay between database connect attempts.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.Database.RetryDelaySec) * time.Second
}

// LiveCacheTTL returns the expiry for cached live-status rows.
func (c *Config) LiveCacheTTL() time.Duration {
	if c.Redis.TTLSec <= 0 {
		return time.Minute
	}
	return time.Duration(c.Redis.TTLSec) * time.Second
}
