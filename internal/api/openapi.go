package api

import (
	"fmt"

	"github.com/JaimeStill/intake/internal/config"
	"github.com/JaimeStill/intake/internal/requests"
	"github.com/JaimeStill/intake/pkg/openapi"
)

// NewSpec builds the OpenAPI document describing the API module's routes.
func NewSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(cfg.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.OpenAPI.Description)
	spec.AddTag("Requests", "Contact request intake and listing")
	for _, url := range cfg.OpenAPI.Servers {
		spec.AddServer(url)
	}

	spec.Components.AddSchemas(requests.OpenAPISchemas())
	for path, item := range requests.OpenAPIPaths(cfg.API.BasePath) {
		spec.AddPath(path, item)
	}

	return spec
}

// SpecJSON returns the serialized OpenAPI document.
func SpecJSON(cfg *config.Config) ([]byte, error) {
	data, err := openapi.MarshalJSON(NewSpec(cfg))
	if err != nil {
		return nil, fmt.Errorf("marshal openapi spec: %w", err)
	}
	return data, nil
}
