package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8088"`

	// Storage
	StorageBackend string        `envconfig:"STORAGE_BACKEND" default:"file"`
	PostgresDSN    string        `envconfig:"POSTGRES_DSN"`
	SQLitePath     string        `envconfig:"SQLITE_PATH" default:"data/babytracker.db"`
	DataDir        string        `envconfig:"DATA_DIR" default:"data"`
	StoreTimeout   time.Duration `envconfig:"STORE_TIMEOUT" default:"5s"`

	// Auth: local JWT verification in development, remote identity
	// provider everywhere else.
	JWTSecret     string `envconfig:"JWT_SECRET"`
	AuthVerifyURL string `envconfig:"AUTH_VERIFY_URL"`

	// Tracing
	TracingEnabled bool   `envconfig:"TRACING_ENABLED" default:"false"`
	OTLPEndpoint   string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT" default:"localhost:4317"`
}

// Load reads .env (if present), then the environment, and validates the
// result.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	switch c.Env {
	case "development", "staging", "production":
	default:
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	switch c.StorageBackend {
	case "file":
		if c.DataDir == "" {
			return errors.New("DATA_DIR is required when STORAGE_BACKEND=file")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required when STORAGE_BACKEND=sqlite")
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
		}
	default:
		return errors.New("STORAGE_BACKEND must be one of: file, sqlite, postgres")
	}
	if c.Env == "development" {
		if c.JWTSecret == "" {
			return errors.New("JWT_SECRET is required in development")
		}
	} else if c.AuthVerifyURL == "" {
		return errors.New("AUTH_VERIFY_URL is required outside development")
	}
	if c.StoreTimeout <= 0 {
		return errors.New("STORE_TIMEOUT must be positive")
	}
	return nil
}
