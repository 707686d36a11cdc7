// Package config loads service configuration from TOML files, a .env file, and
// INTAKE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/intake/internal/events"
	"github.com/JaimeStill/intake/pkg/database"
	"github.com/JaimeStill/intake/pkg/docstore"
	"github.com/JaimeStill/intake/pkg/openapi"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"
	DotEnvFile           = ".env"

	EnvIntakeEnv             = "INTAKE_ENV"
	EnvIntakeShutdownTimeout = "INTAKE_SHUTDOWN_TIMEOUT"
	EnvIntakeVersion         = "INTAKE_VERSION"
	EnvIntakeServiceName     = "INTAKE_SERVICE_NAME"
)

var databaseEnv = &database.Env{
	Host:            "INTAKE_DB_HOST",
	Port:            "INTAKE_DB_PORT",
	Name:            "INTAKE_DB_NAME",
	User:            "INTAKE_DB_USER",
	Password:        "INTAKE_DB_PASSWORD",
	SSLMode:         "INTAKE_DB_SSL_MODE",
	ApplicationName: "INTAKE_DB_APPLICATION_NAME",
	MaxOpenConns:    "INTAKE_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "INTAKE_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "INTAKE_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "INTAKE_DB_CONN_TIMEOUT",
}

var mongoEnv = &docstore.Env{
	URI:         "INTAKE_MONGO_URI",
	Database:    "INTAKE_MONGO_DATABASE",
	ConnTimeout: "INTAKE_MONGO_CONN_TIMEOUT",
}

var eventsEnv = &events.Env{
	Driver:        "INTAKE_EVENTS_DRIVER",
	Timeout:       "INTAKE_EVENTS_TIMEOUT",
	QueueSize:     "INTAKE_EVENTS_QUEUE_SIZE",
	RedisAddr:     "INTAKE_EVENTS_REDIS_ADDR",
	RedisPassword: "INTAKE_EVENTS_REDIS_PASSWORD",
	RedisDB:       "INTAKE_EVENTS_REDIS_DB",
	RedisKey:      "INTAKE_EVENTS_REDIS_KEY",
	KafkaBrokers:  "INTAKE_EVENTS_KAFKA_BROKERS",
	KafkaTopic:    "INTAKE_EVENTS_KAFKA_TOPIC",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "INTAKE_OPENAPI_TITLE",
	Description: "INTAKE_OPENAPI_DESCRIPTION",
	Servers:     "INTAKE_OPENAPI_SERVERS",
	DocsPath:    "INTAKE_OPENAPI_DOCS_PATH",
}

// Config is the root configuration for the intake service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Store           StoreConfig     `toml:"store"`
	Database        database.Config `toml:"database"`
	Mongo           docstore.Config `toml:"mongo"`
	Events          events.Config   `toml:"events"`
	API             APIConfig       `toml:"api"`
	OpenAPI         openapi.Config  `toml:"openapi"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
	ServiceName     string          `toml:"service_name"`
}

// Env returns the INTAKE_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvIntakeEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads .env (if present) into the process environment, then the base
// config (if present), applies any environment overlay, and finalizes all values.
// Variables already set in the environment take precedence over .env entries.
func Load() (*Config, error) {
	if err := LoadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv loads path into the process environment without overriding existing
// variables. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	if overlay.ServiceName != "" {
		c.ServiceName = overlay.ServiceName
	}
	c.Server.Merge(&overlay.Server)
	c.Store.Merge(&overlay.Store)
	c.Database.Merge(&overlay.Database)
	c.Mongo.Merge(&overlay.Mongo)
	c.Events.Merge(&overlay.Events)
	c.API.Merge(&overlay.API)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Store.Finalize(); err != nil {
		return fmt.Errorf("store: %w", err)
	}

	switch c.Store.Driver {
	case StoreDriverPostgres:
		if err := c.Database.Finalize(databaseEnv); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	case StoreDriverMongo:
		if err := c.Mongo.Finalize(mongoEnv); err != nil {
			return fmt.Errorf("mongo: %w", err)
		}
	}

	if err := c.Events.Finalize(eventsEnv); err != nil {
		return fmt.Errorf("events: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
	if c.ServiceName == "" {
		c.ServiceName = "intake"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvIntakeShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvIntakeVersion); v != "" {
		c.Version = v
	}
	if v := os.Getenv(EnvIntakeServiceName); v != "" {
		c.ServiceName = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvIntakeEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
