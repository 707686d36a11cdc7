package api

import (
	"github.com/JaimeStill/intake/internal/config"
	"github.com/JaimeStill/intake/internal/infrastructure"
	"github.com/JaimeStill/intake/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle:   infra.Lifecycle,
			Logger:      infra.Logger.With("module", "api"),
			StoreDriver: infra.StoreDriver,
			Database:    infra.Database,
			Documents:   infra.Documents,
			Events:      infra.Events,
		},
		Pagination: cfg.API.Pagination,
	}
}
