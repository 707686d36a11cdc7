package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/JaimeStill/intake/pkg/formatting"
	"github.com/JaimeStill/intake/pkg/middleware"
	"github.com/JaimeStill/intake/pkg/pagination"
)

const (
	EnvAPIBasePath    = "INTAKE_API_BASE_PATH"
	EnvAPIMaxBodySize = "INTAKE_API_MAX_BODY_SIZE"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "INTAKE_CORS_ENABLED",
	Origins:          "INTAKE_CORS_ORIGINS",
	AllowedMethods:   "INTAKE_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "INTAKE_CORS_ALLOWED_HEADERS",
	AllowCredentials: "INTAKE_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "INTAKE_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "INTAKE_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "INTAKE_PAGINATION_MAX_PAGE_SIZE",
}

// Origins of the web form during local development.
var defaultCORSOrigins = []string{"http://localhost:4200", "http://127.0.0.1:4200"}

// APIConfig holds API routing, body limits, CORS, and pagination settings.
type APIConfig struct {
	BasePath    string                `toml:"base_path"`
	MaxBodySize string                `toml:"max_body_size"`
	CORS        middleware.CORSConfig `toml:"cors"`
	Pagination  pagination.Config     `toml:"pagination"`
}

// MaxBodySizeBytes returns MaxBodySize in bytes. The value is checked by Finalize.
func (c *APIConfig) MaxBodySizeBytes() int64 {
	size, _ := formatting.ParseBytes(c.MaxBodySize)
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and pagination configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/requests"
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "64KB"
	}
	if len(c.CORS.Origins) == 0 {
		c.CORS.Origins = slices.Clone(defaultCORSOrigins)
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAPIMaxBodySize); v != "" {
		c.MaxBodySize = v
	}
}

func (c *APIConfig) validate() error {
	size, err := formatting.ParseBytes(c.MaxBodySize)
	if err != nil {
		return fmt.Errorf("invalid max_body_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_body_size must be positive")
	}
	return nil
}
