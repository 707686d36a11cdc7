// Package pagination provides types and utilities for page/limit queries.
package pagination

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
)

// ErrInvalidRequest is wrapped by every error returned from ParsePageRequest and Validate.
var ErrInvalidRequest = errors.New("invalid pagination request")

// RequestError itemizes the problems found in a page request.
type RequestError struct {
	Messages []string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %v", ErrInvalidRequest, e.Messages)
}

func (e *RequestError) Unwrap() error {
	return ErrInvalidRequest
}

// PageRequest identifies a 1-based page and the number of items per page.
type PageRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Offset calculates the number of records to skip based on page and limit.
// ok is false when the request is invalid or the offset does not fit in an int;
// such a page lies past the end of any store.
func (r PageRequest) Offset() (offset int, ok bool) {
	if r.Page < 1 || r.Limit < 1 {
		return 0, false
	}
	if r.Page-1 > math.MaxInt/r.Limit {
		return 0, false
	}
	return (r.Page - 1) * r.Limit, true
}

// Validate reports whether page is at least 1 and limit falls within [1, cfg.MaxPageSize].
// Values are never clamped.
func (r PageRequest) Validate(cfg Config) error {
	var msgs []string
	if r.Page < 1 {
		msgs = append(msgs, "page must not be less than 1")
	}
	if r.Limit < 1 {
		msgs = append(msgs, "limit must not be less than 1")
	}
	if r.Limit > cfg.MaxPageSize {
		msgs = append(msgs, fmt.Sprintf("limit must not be greater than %d", cfg.MaxPageSize))
	}
	if len(msgs) > 0 {
		return &RequestError{Messages: msgs}
	}
	return nil
}

// ParsePageRequest reads page and limit from URL query values.
// Absent parameters take the defaults (page 1, cfg.DefaultPageSize);
// present parameters must be integers within range.
func ParsePageRequest(values url.Values, cfg Config) (PageRequest, error) {
	req := PageRequest{Page: 1, Limit: cfg.DefaultPageSize}
	var msgs []string

	if values.Has("page") {
		n, err := strconv.Atoi(values.Get("page"))
		if err != nil {
			msgs = append(msgs, "page must be an integer number")
		} else {
			req.Page = n
		}
	}

	if values.Has("limit") {
		n, err := strconv.Atoi(values.Get("limit"))
		if err != nil {
			msgs = append(msgs, "limit must be an integer number")
		} else {
			req.Limit = n
		}
	}

	if err := req.Validate(cfg); err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) {
			msgs = append(msgs, reqErr.Messages...)
		}
	}

	if len(msgs) > 0 {
		return req, &RequestError{Messages: msgs}
	}
	return req, nil
}

// Meta describes the page that was returned and the size of the full collection.
// Page and Limit echo the request unmodified.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// PageResult holds a page of items along with pagination metadata.
type PageResult[T any] struct {
	Items []T  `json:"items"`
	Meta  Meta `json:"meta"`
}

// TotalPages returns the number of pages needed to hold totalItems at limit per page.
// An empty collection has zero pages.
func TotalPages(totalItems, limit int) int {
	if totalItems == 0 || limit < 1 {
		return 0
	}
	pages := totalItems / limit
	if totalItems%limit != 0 {
		pages++
	}
	return pages
}

// NewPageResult creates a PageResult with calculated total pages.
// A nil items slice is replaced with an empty one so it encodes as [].
func NewPageResult[T any](items []T, totalItems int, req PageRequest) PageResult[T] {
	if items == nil {
		items = []T{}
	}

	return PageResult[T]{
		Items: items,
		Meta: Meta{
			Page:       req.Page,
			Limit:      req.Limit,
			TotalItems: totalItems,
			TotalPages: TotalPages(totalItems, req.Limit),
		},
	}
}
