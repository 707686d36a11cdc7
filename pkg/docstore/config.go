package docstore

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds MongoDB connection parameters.
type Config struct {
	URI         string `toml:"uri"`
	Database    string `toml:"database"`
	ConnTimeout string `toml:"conn_timeout"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	URI         string
	Database    string
	ConnTimeout string
}

// ConnTimeoutDuration returns ConnTimeout as a time.Duration.
func (c *Config) ConnTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ConnTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.URI != "" {
		c.URI = overlay.URI
	}
	if overlay.Database != "" {
		c.Database = overlay.Database
	}
	if overlay.ConnTimeout != "" {
		c.ConnTimeout = overlay.ConnTimeout
	}
}

func (c *Config) loadDefaults() {
	if c.URI == "" {
		c.URI = "mongodb://localhost:27017"
	}
	if c.Database == "" {
		c.Database = "intake"
	}
	if c.ConnTimeout == "" {
		c.ConnTimeout = "5s"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.URI != "" {
		if v := os.Getenv(env.URI); v != "" {
			c.URI = v
		}
	}
	if env.Database != "" {
		if v := os.Getenv(env.Database); v != "" {
			c.Database = v
		}
	}
	if env.ConnTimeout != "" {
		if v := os.Getenv(env.ConnTimeout); v != "" {
			c.ConnTimeout = v
		}
	}
}

func (c *Config) validate() error {
	if !strings.HasPrefix(c.URI, "mongodb://") && !strings.HasPrefix(c.URI, "mongodb+srv://") {
		return fmt.Errorf("invalid uri: must use mongodb:// or mongodb+srv:// scheme")
	}
	if c.Database == "" {
		return fmt.Errorf("database required")
	}
	if _, err := time.ParseDuration(c.ConnTimeout); err != nil {
		return fmt.Errorf("invalid conn_timeout: %w", err)
	}
	return nil
}
