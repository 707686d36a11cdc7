package pagination

import (
	"fmt"
	"os"
	"strconv"
)

// Limits applied when configuration leaves them unset.
const (
	DefaultLimit    = 20
	DefaultMaxLimit = 100
)

// Config bounds the limit a client may request.
// DefaultPageSize applies when the limit parameter is absent; MaxPageSize rejects larger limits.
type Config struct {
	DefaultPageSize int `toml:"default_page_size"`
	MaxPageSize     int `toml:"max_page_size"`
}

// ConfigEnv names the environment variables that override Config.
type ConfigEnv struct {
	DefaultPageSize string
	MaxPageSize     string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *ConfigEnv) error {
	if c.DefaultPageSize == 0 {
		c.DefaultPageSize = DefaultLimit
	}
	if c.MaxPageSize == 0 {
		c.MaxPageSize = DefaultMaxLimit
	}
	if env != nil {
		overrideInt(&c.DefaultPageSize, env.DefaultPageSize)
		overrideInt(&c.MaxPageSize, env.MaxPageSize)
	}

	switch {
	case c.DefaultPageSize < 1:
		return fmt.Errorf("default_page_size must be positive, got %d", c.DefaultPageSize)
	case c.MaxPageSize < 1:
		return fmt.Errorf("max_page_size must be positive, got %d", c.MaxPageSize)
	case c.DefaultPageSize > c.MaxPageSize:
		return fmt.Errorf("default_page_size %d exceeds max_page_size %d", c.DefaultPageSize, c.MaxPageSize)
	}
	return nil
}

// Merge applies non-zero values from the overlay configuration.
func (c *Config) Merge(overlay *Config) {
	if overlay.DefaultPageSize != 0 {
		c.DefaultPageSize = overlay.DefaultPageSize
	}
	if overlay.MaxPageSize != 0 {
		c.MaxPageSize = overlay.MaxPageSize
	}
}

func overrideInt(dst *int, key string) {
	if key == "" {
		return
	}
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
