package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/JaimeStill/intake/internal/infrastructure"
	"github.com/JaimeStill/intake/pkg/handlers"
	"github.com/JaimeStill/intake/pkg/module"
)

const healthPingTimeout = 2 * time.Second

type healthResponse struct {
	Status        string                     `json:"status"`
	Service       string                     `json:"service"`
	Store         infrastructure.StoreStatus `json:"store"`
	Timestamp     time.Time                  `json:"timestamp"`
	UptimeSeconds int64                      `json:"uptimeSeconds"`
}

func buildRouter(infra *infrastructure.Infrastructure, service string) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			handlers.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	router.HandleNative("GET /health", healthHandler(infra, service))

	router.SetFallback(func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusNotFound, map[string]string{
			"error": fmt.Sprintf("cannot %s %s", r.Method, r.URL.Path),
		})
	})

	return router
}

// healthHandler always responds 200; a store that is not up degrades the status.
func healthHandler(infra *infrastructure.Infrastructure, service string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		defer cancel()

		store := infra.StoreStatus(ctx)

		status := "ok"
		if store != infrastructure.StoreUp {
			status = "degraded"
		}

		handlers.RespondJSON(w, http.StatusOK, healthResponse{
			Status:        status,
			Service:       service,
			Store:         store,
			Timestamp:     time.Now().UTC(),
			UptimeSeconds: int64(infra.Lifecycle.Uptime().Seconds()),
		})
	}
}
