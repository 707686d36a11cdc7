package config

import (
	"fmt"
	"os"
)

// Store drivers.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMongo    = "mongo"
	StoreDriverMemory   = "memory"
)

const EnvStoreDriver = "INTAKE_STORE_DRIVER"

// StoreConfig selects the persistence driver for requests.
type StoreConfig struct {
	Driver string `toml:"driver"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *StoreConfig) Finalize() error {
	if c.Driver == "" {
		c.Driver = StoreDriverPostgres
	}
	if v := os.Getenv(EnvStoreDriver); v != "" {
		c.Driver = v
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *StoreConfig) Merge(overlay *StoreConfig) {
	if overlay.Driver != "" {
		c.Driver = overlay.Driver
	}
}

func (c *StoreConfig) validate() error {
	switch c.Driver {
	case StoreDriverPostgres, StoreDriverMongo, StoreDriverMemory:
		return nil
	default:
		return fmt.Errorf("unsupported driver: %s", c.Driver)
	}
}
