// Package api assembles the API module with the request domain and route registration.
package api

import (
	"net/http"

	"github.com/JaimeStill/intake/internal/config"
	"github.com/JaimeStill/intake/internal/infrastructure"
	"github.com/JaimeStill/intake/pkg/middleware"
	"github.com/JaimeStill/intake/pkg/module"
)

// NewModule creates the API module with the request handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)

	domain, err := NewDomain(runtime)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	registerRoutes(mux, domain)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.MaxBodySize(cfg.API.MaxBodySizeBytes()))

	return m, nil
}
