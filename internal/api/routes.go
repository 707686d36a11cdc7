package api

import (
	"net/http"

	"github.com/JaimeStill/intake/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain) {
	routes.Register(
		mux,
		domain.Requests.Handler().Routes(),
	)
}
