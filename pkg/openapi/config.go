package openapi

import (
	"fmt"
	"os"
	"strings"
)

// Config describes the generated document and where its reference UI is mounted.
type Config struct {
	Title       string   `toml:"title"`
	Description string   `toml:"description"`
	Servers     []string `toml:"servers"`
	DocsPath    string   `toml:"docs_path"`
}

// ConfigEnv names the environment variables that override Config.
type ConfigEnv struct {
	Title       string
	Description string
	Servers     string
	DocsPath    string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *ConfigEnv) error {
	if c.Title == "" {
		c.Title = "Intake API"
	}
	if c.Description == "" {
		c.Description = "Contact request intake with rule-based classification."
	}
	if len(c.Servers) == 0 {
		c.Servers = []string{"/"}
	}
	if c.DocsPath == "" {
		c.DocsPath = "/docs"
	}

	if env != nil {
		c.loadEnv(env)
	}

	if !strings.HasPrefix(c.DocsPath, "/") || strings.Count(c.DocsPath, "/") != 1 || len(c.DocsPath) < 2 {
		return fmt.Errorf("docs_path must be a single-level path such as /docs, got %q", c.DocsPath)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
	if overlay.Servers != nil {
		c.Servers = overlay.Servers
	}
	if overlay.DocsPath != "" {
		c.DocsPath = overlay.DocsPath
	}
}

func (c *Config) loadEnv(env *ConfigEnv) {
	lookup := func(key string) string {
		if key == "" {
			return ""
		}
		return os.Getenv(key)
	}

	if v := lookup(env.Title); v != "" {
		c.Title = v
	}
	if v := lookup(env.Description); v != "" {
		c.Description = v
	}
	if v := lookup(env.Servers); v != "" {
		var servers []string
		for s := range strings.SplitSeq(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				servers = append(servers, s)
			}
		}
		c.Servers = servers
	}
	if v := lookup(env.DocsPath); v != "" {
		c.DocsPath = v
	}
}
