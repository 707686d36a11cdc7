package requests

import (
	"errors"
	"net/http"
	"strings"
)

// Domain errors for request operations.
var (
	ErrValidation   = errors.New("validation failed")
	ErrInvalidPage  = errors.New("invalid page request")
	ErrStorage      = errors.New("storage failure")
	ErrDuplicate    = errors.New("request already exists")
	ErrBodyTooLarge = errors.New("request body too large")
)

// ValidationError lists every problem found in a submission.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + strings.Join(e.Messages, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// MapHTTPStatus maps request domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrValidation) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrInvalidPage) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrBodyTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
