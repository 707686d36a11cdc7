package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

const (
	EnvServerHost              = "INTAKE_SERVER_HOST"
	EnvServerPort              = "INTAKE_SERVER_PORT"
	EnvServerReadTimeout       = "INTAKE_SERVER_READ_TIMEOUT"
	EnvServerReadHeaderTimeout = "INTAKE_SERVER_READ_HEADER_TIMEOUT"
	EnvServerWriteTimeout      = "INTAKE_SERVER_WRITE_TIMEOUT"
	EnvServerIdleTimeout       = "INTAKE_SERVER_IDLE_TIMEOUT"
	EnvServerShutdownTimeout   = "INTAKE_SERVER_SHUTDOWN_TIMEOUT"

	// EnvPort is the platform-assigned port. INTAKE_SERVER_PORT wins when both are set.
	EnvPort = "PORT"
)

// ServerConfig holds HTTP listener parameters.
// Timeouts are duration strings so TOML overlays can leave them unset.
type ServerConfig struct {
	Host              string `toml:"host"`
	Port              int    `toml:"port"`
	ReadTimeout       string `toml:"read_timeout"`
	ReadHeaderTimeout string `toml:"read_header_timeout"`
	WriteTimeout      string `toml:"write_timeout"`
	IdleTimeout       string `toml:"idle_timeout"`
	ShutdownTimeout   string `toml:"shutdown_timeout"`
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *ServerConfig) ReadTimeoutDuration() time.Duration       { return parseDuration(c.ReadTimeout) }
func (c *ServerConfig) ReadHeaderTimeoutDuration() time.Duration { return parseDuration(c.ReadHeaderTimeout) }
func (c *ServerConfig) WriteTimeoutDuration() time.Duration      { return parseDuration(c.WriteTimeout) }
func (c *ServerConfig) IdleTimeoutDuration() time.Duration       { return parseDuration(c.IdleTimeout) }
func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration   { return parseDuration(c.ShutdownTimeout) }

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ServerConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ServerConfig) Merge(overlay *ServerConfig) {
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
	for dst, src := range c.timeouts(overlay) {
		if src != "" {
			*dst = src
		}
	}
}

// timeouts pairs each timeout field of c with the same field of other.
func (c *ServerConfig) timeouts(other *ServerConfig) map[*string]string {
	return map[*string]string{
		&c.ReadTimeout:       other.ReadTimeout,
		&c.ReadHeaderTimeout: other.ReadHeaderTimeout,
		&c.WriteTimeout:      other.WriteTimeout,
		&c.IdleTimeout:       other.IdleTimeout,
		&c.ShutdownTimeout:   other.ShutdownTimeout,
	}
}

func (c *ServerConfig) loadDefaults() {
	defaults := ServerConfig{
		ReadTimeout:       "15s",
		ReadHeaderTimeout: "5s",
		WriteTimeout:      "30s",
		IdleTimeout:       "1m",
		ShutdownTimeout:   "30s",
	}

	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 3000
	}
	for dst, def := range c.timeouts(&defaults) {
		if *dst == "" {
			*dst = def
		}
	}
}

func (c *ServerConfig) loadEnv() {
	if v := os.Getenv(EnvServerHost); v != "" {
		c.Host = v
	}
	for _, key := range []string{EnvPort, EnvServerPort} {
		if v := os.Getenv(key); v != "" {
			if port, err := strconv.Atoi(v); err == nil {
				c.Port = port
			}
		}
	}

	env := map[*string]string{
		&c.ReadTimeout:       EnvServerReadTimeout,
		&c.ReadHeaderTimeout: EnvServerReadHeaderTimeout,
		&c.WriteTimeout:      EnvServerWriteTimeout,
		&c.IdleTimeout:       EnvServerIdleTimeout,
		&c.ShutdownTimeout:   EnvServerShutdownTimeout,
	}
	for dst, key := range env {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
}

func (c *ServerConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	named := []struct {
		name  string
		value string
	}{
		{"read_timeout", c.ReadTimeout},
		{"read_header_timeout", c.ReadHeaderTimeout},
		{"write_timeout", c.WriteTimeout},
		{"idle_timeout", c.IdleTimeout},
		{"shutdown_timeout", c.ShutdownTimeout},
	}
	for _, n := range named {
		if d, err := time.ParseDuration(n.value); err != nil || d <= 0 {
			return fmt.Errorf("invalid %s: %q", n.name, n.value)
		}
	}
	return nil
}

func parseDuration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}
