// Package handlers provides JSON response helpers shared by HTTP handlers.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ValidationResponse is the body written for rejected client input.
// Message itemizes every violation found.
type ValidationResponse struct {
	Error   string   `json:"error"`
	Message []string `json:"message"`
}

// RespondJSON writes data as a JSON body with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs err and writes it as {"error": "..."} with the given status code.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request rejected", "status", status, "error", err)
	}
	RespondJSON(w, status, map[string]string{"error": err.Error()})
}

// RespondValidation writes a 400 response listing each validation message.
func RespondValidation(w http.ResponseWriter, logger *slog.Logger, messages []string) {
	logger.Warn("validation failed", "messages", messages)
	RespondJSON(w, http.StatusBadRequest, ValidationResponse{
		Error:   "validation failed",
		Message: messages,
	})
}
