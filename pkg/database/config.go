package database

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Config holds PostgreSQL connection and pool parameters.
type Config struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	Name            string `toml:"name"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	SSLMode         string `toml:"ssl_mode"`
	ApplicationName string `toml:"application_name"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime string `toml:"conn_max_lifetime"`
	ConnTimeout     string `toml:"conn_timeout"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	SSLMode         string
	ApplicationName string
	MaxOpenConns    string
	MaxIdleConns    string
	ConnMaxLifetime string
	ConnTimeout     string
}

var sslModes = []string{"disable", "allow", "prefer", "require", "verify-ca", "verify-full"}

// ConnMaxLifetimeDuration returns ConnMaxLifetime as a time.Duration.
func (c *Config) ConnMaxLifetimeDuration() time.Duration {
	d, _ := time.ParseDuration(c.ConnMaxLifetime)
	return d
}

// ConnTimeoutDuration returns ConnTimeout as a time.Duration.
func (c *Config) ConnTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ConnTimeout)
	return d
}

// Dsn returns a keyword/value connection string for the pgx driver.
// Values are single-quoted so passwords may contain spaces.
func (c *Config) Dsn() string {
	pairs := []struct{ key, value string }{
		{"host", c.Host},
		{"port", strconv.Itoa(c.Port)},
		{"dbname", c.Name},
		{"user", c.User},
		{"password", c.Password},
		{"sslmode", c.SSLMode},
		{"application_name", c.ApplicationName},
	}

	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if p.value == "" {
			continue
		}
		parts = append(parts, p.key+"="+quoteDsnValue(p.value))
	}
	return strings.Join(parts, " ")
}

// URL returns the connection string in postgres:// form, as expected by the migrator.
func (c *Config) URL() string {
	q := url.Values{"sslmode": []string{c.SSLMode}}
	if c.ApplicationName != "" {
		q.Set("application_name", c.ApplicationName)
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     c.Name,
		RawQuery: q.Encode(),
	}
	return u.String()
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
	for dst, src := range c.stringFields(overlay) {
		if src != "" {
			*dst = src
		}
	}
	for dst, src := range c.intFields(overlay) {
		if src != 0 {
			*dst = src
		}
	}
}

// stringFields pairs each string field of c with the same field of other.
func (c *Config) stringFields(other *Config) map[*string]string {
	return map[*string]string{
		&c.Host:            other.Host,
		&c.Name:            other.Name,
		&c.User:            other.User,
		&c.Password:        other.Password,
		&c.SSLMode:         other.SSLMode,
		&c.ApplicationName: other.ApplicationName,
		&c.ConnMaxLifetime: other.ConnMaxLifetime,
		&c.ConnTimeout:     other.ConnTimeout,
	}
}

// intFields pairs each integer field of c with the same field of other.
func (c *Config) intFields(other *Config) map[*int]int {
	return map[*int]int{
		&c.Port:         other.Port,
		&c.MaxOpenConns: other.MaxOpenConns,
		&c.MaxIdleConns: other.MaxIdleConns,
	}
}

func (c *Config) loadDefaults() {
	defaults := Config{
		Host:            "localhost",
		Port:            5432,
		SSLMode:         "disable",
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: "15m",
		ConnTimeout:     "5s",
	}

	for dst, def := range c.stringFields(&defaults) {
		if *dst == "" {
			*dst = def
		}
	}
	for dst, def := range c.intFields(&defaults) {
		if *dst == 0 {
			*dst = def
		}
	}
}

func (c *Config) loadEnv(env *Env) {
	strs := map[*string]string{
		&c.Host:            env.Host,
		&c.Name:            env.Name,
		&c.User:            env.User,
		&c.Password:        env.Password,
		&c.SSLMode:         env.SSLMode,
		&c.ApplicationName: env.ApplicationName,
		&c.ConnMaxLifetime: env.ConnMaxLifetime,
		&c.ConnTimeout:     env.ConnTimeout,
	}
	for dst, key := range strs {
		if key == "" {
			continue
		}
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	nums := map[*int]string{
		&c.Port:         env.Port,
		&c.MaxOpenConns: env.MaxOpenConns,
		&c.MaxIdleConns: env.MaxIdleConns,
	}
	for dst, key := range nums {
		if key == "" {
			continue
		}
		if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
			*dst = n
		}
	}
}

func (c *Config) validate() error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, errors.New("name required"))
	}
	if c.User == "" {
		errs = append(errs, errors.New("user required"))
	}
	if !slices.Contains(sslModes, c.SSLMode) {
		errs = append(errs, fmt.Errorf("invalid ssl_mode %q", c.SSLMode))
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		errs = append(errs, fmt.Errorf("max_idle_conns %d exceeds max_open_conns %d", c.MaxIdleConns, c.MaxOpenConns))
	}
	if _, err := time.ParseDuration(c.ConnMaxLifetime); err != nil {
		errs = append(errs, fmt.Errorf("invalid conn_max_lifetime: %w", err))
	}
	if _, err := time.ParseDuration(c.ConnTimeout); err != nil {
		errs = append(errs, fmt.Errorf("invalid conn_timeout: %w", err))
	}
	return errors.Join(errs...)
}

func quoteDsnValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(v) + "'"
}
