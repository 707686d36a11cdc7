package module

import (
	"net/http"
	"strings"
)

// Router dispatches requests to mounted modules by their first path segment.
// Paths owned by no module go to a native ServeMux, and paths the mux cannot
// route go to the fallback when one is set.
type Router struct {
	modules  map[string]*Module
	native   *http.ServeMux
	fallback http.HandlerFunc
}

func NewRouter() *Router {
	return &Router{
		modules: make(map[string]*Module),
		native:  http.NewServeMux(),
	}
}

// HandleNative registers a handler on the native mux.
func (r *Router) HandleNative(pattern string, handler http.HandlerFunc) {
	r.native.HandleFunc(pattern, handler)
}

// Mount registers m under its prefix, replacing any module already there.
func (r *Router) Mount(m *Module) {
	r.modules[m.prefix] = m
}

// SetFallback handles requests that neither a module nor the native mux can route.
func (r *Router) SetFallback(handler http.HandlerFunc) {
	r.fallback = handler
}

// ServeHTTP drops a single trailing slash, then dispatches to the owning module,
// the native mux, or the fallback in that order.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if p := req.URL.Path; len(p) > 1 && strings.HasSuffix(p, "/") {
		req.URL.Path = strings.TrimSuffix(p, "/")
	}

	if m, ok := r.modules[firstSegment(req.URL.Path)]; ok {
		m.Serve(w, req)
		return
	}

	if r.fallback != nil {
		if _, pattern := r.native.Handler(req); pattern == "" {
			r.fallback(w, req)
			return
		}
	}

	r.native.ServeHTTP(w, req)
}

func firstSegment(path string) string {
	rest := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return "/" + rest
}
