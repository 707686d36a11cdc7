// Package routes declares HTTP routes as data and registers them on a ServeMux.
package routes

import "net/http"

// Route binds an HTTP method and pattern to a handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Group organizes routes under a common prefix.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Patterns returns the fully qualified mux patterns of every route in the group, depth first.
func (g Group) Patterns() []string {
	var out []string
	g.walk("", func(pattern string, _ http.HandlerFunc) {
		out = append(out, pattern)
	})
	return out
}

// Register adds all routes from the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, group := range groups {
		group.walk("", func(pattern string, handler http.HandlerFunc) {
			mux.HandleFunc(pattern, handler)
		})
	}
}

func (g Group) walk(parentPrefix string, fn func(pattern string, handler http.HandlerFunc)) {
	fullPrefix := parentPrefix + g.Prefix
	for _, route := range g.Routes {
		fn(route.Method+" "+fullPrefix+route.Pattern, route.Handler)
	}
	for _, child := range g.Children {
		child.walk(fullPrefix, fn)
	}
}
