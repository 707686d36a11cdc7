// Package middleware provides composable HTTP middleware and the ordered stack that applies it.
package middleware

import "net/http"

// System manages an ordered stack of HTTP middleware.
type System interface {
	Use(mw func(http.Handler) http.Handler)
	Apply(handler http.Handler) http.Handler
}

type mw struct {
	stack []func(http.Handler) http.Handler
}

// New creates an empty middleware System.
func New() System {
	return &mw{
		stack: []func(http.Handler) http.Handler{},
	}
}

func (m *mw) Use(fn func(http.Handler) http.Handler) {
	m.stack = append(m.stack, fn)
}

// Apply wraps handler so the first middleware registered runs outermost.
func (m *mw) Apply(handler http.Handler) http.Handler {
	for i := len(m.stack) - 1; i >= 0; i-- {
		handler = m.stack[i](handler)
	}
	return handler
}

// MaxBodySize returns middleware that caps request bodies at limit bytes.
// Reads past the limit fail with *http.MaxBytesError.
func MaxBodySize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && limit > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
