package requests

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/intake/pkg/handlers"
	"github.com/JaimeStill/intake/pkg/pagination"
	"github.com/JaimeStill/intake/pkg/routes"
)

// Handler provides HTTP endpoints for request intake.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "requests"),
		pagination: pagination,
	}
}

// Routes returns the route group for request endpoints.
// The group is relative to the module that mounts it.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{$}", Handler: h.List},
			{Method: "POST", Pattern: "/{$}", Handler: h.Create},
		},
	}
}

// Create validates a JSON submission, classifies and stores it, and responds 201 with the result.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	cmd, err := DecodeCreate(r.Body)
	if err != nil {
		h.respondError(w, err)
		return
	}

	result, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}

// List returns the page of requests selected by the page and limit query parameters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.ParsePageRequest(r.URL.Query(), h.pagination)
	if err != nil {
		h.respondError(w, err)
		return
	}

	result, err := h.sys.List(r.Context(), page)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		handlers.RespondValidation(w, h.logger, valErr.Messages)
		return
	}

	var pageErr *pagination.RequestError
	if errors.As(err, &pageErr) {
		handlers.RespondValidation(w, h.logger, pageErr.Messages)
		return
	}

	handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
}
