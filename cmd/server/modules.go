package main

import (
	"github.com/JaimeStill/intake/internal/api"
	"github.com/JaimeStill/intake/internal/config"
	"github.com/JaimeStill/intake/internal/infrastructure"
	"github.com/JaimeStill/intake/pkg/middleware"
	"github.com/JaimeStill/intake/pkg/module"
	"github.com/JaimeStill/intake/web/scalar"
)

type Modules struct {
	API  *module.Module
	Docs *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	spec, err := api.SpecJSON(cfg)
	if err != nil {
		return nil, err
	}

	docsModule := scalar.NewModule(cfg.OpenAPI.DocsPath, cfg.OpenAPI.Title, spec)
	docsModule.Use(middleware.Logger(infra.Logger))

	return &Modules{
		API:  apiModule,
		Docs: docsModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Docs)
}
