// Package module mounts independently configured HTTP handlers under single-level path prefixes.
package module

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/JaimeStill/intake/pkg/middleware"
)

// Module is an HTTP handler that strips its prefix and delegates to an inner router
// with its own middleware stack. The wrapped handler is built on first use, so all
// middleware must be registered before the module serves traffic.
type Module struct {
	prefix     string
	router     http.Handler
	middleware middleware.System
	once       sync.Once
	handler    http.Handler
}

// New creates a Module with the given single-level prefix (e.g. "/requests").
// Panics if the prefix is empty, missing a leading slash, or multi-level.
func New(prefix string, router http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{
		prefix:     prefix,
		router:     router,
		middleware: middleware.New(),
	}
}

// Handler returns the inner router wrapped with the module's middleware stack.
func (m *Module) Handler() http.Handler {
	m.once.Do(func() {
		m.handler = m.middleware.Apply(m.router)
	})
	return m.handler
}

// Prefix returns the module's path prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Serve strips the module prefix from the request path and dispatches to the inner router.
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	path := extractPath(req.URL.Path, m.prefix)
	m.Handler().ServeHTTP(w, cloneRequest(req, path))
}

// Use adds middleware to the module's stack.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware.Use(mw)
}

func cloneRequest(req *http.Request, path string) *http.Request {
	request := new(http.Request)
	*request = *req
	request.URL = new(url.URL)
	*request.URL = *req.URL
	request.URL.Path = path
	request.URL.RawPath = ""
	return request
}

func extractPath(fullPath, prefix string) string {
	path := fullPath[len(prefix):]
	if path == "" {
		return "/"
	}
	return path
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("module prefix cannot be empty")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("module prefix must start with /: %s", prefix)
	}
	if strings.Count(prefix, "/") != 1 {
		return fmt.Errorf("module prefix must be single-level sub-path: %s", prefix)
	}
	return nil
}
