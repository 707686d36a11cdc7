// Package scalar serves the Scalar API reference UI and the OpenAPI document it renders.
package scalar

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/JaimeStill/intake/pkg/module"
	"github.com/JaimeStill/intake/pkg/openapi"
)

//go:embed index.html
var staticFS embed.FS

var index = template.Must(template.ParseFS(staticFS, "index.html"))

// NewModule creates a module that serves the reference UI at basePath and
// specJSON at basePath/openapi.json.
func NewModule(basePath, title string, specJSON []byte) *module.Module {
	router := buildRouter(basePath, title, specJSON)
	return module.New(basePath, router)
}

func buildRouter(basePath, title string, specJSON []byte) http.Handler {
	mux := http.NewServeMux()

	data := map[string]string{"BasePath": basePath, "Title": title}
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		index.Execute(w, data)
	})

	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specJSON))

	return mux
}
