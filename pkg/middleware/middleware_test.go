package middleware_test

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/JaimeStill/intake/pkg/middleware"
)

func enabled(v bool) *bool {
	return &v
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestApplyOrder(t *testing.T) {
	var order []string
	mw := middleware.New()

	for _, name := range []string{"first", "second"} {
		mw.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		})
	}

	handler := mw.Apply(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	want := []string{"first", "second", "handler"}
	if !slices.Equal(order, want) {
		t.Errorf("order: got %v, want %v", order, want)
	}
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		cfg        middleware.CORSConfig
		method     string
		origin     string
		wantOrigin string
		wantCreds  string
		wantVary   bool
		wantCode   int
	}{
		{
			name:     "disabled",
			cfg:      middleware.CORSConfig{Enabled: enabled(false), Origins: []string{"http://example.com"}},
			method:   "GET",
			origin:   "http://example.com",
			wantCode: http.StatusOK,
		},
		{
			name:     "no origins configured",
			cfg:      middleware.CORSConfig{Enabled: enabled(true)},
			method:   "GET",
			origin:   "http://example.com",
			wantCode: http.StatusOK,
		},
		{
			name:       "allowed origin",
			cfg:        middleware.CORSConfig{Enabled: enabled(true), Origins: []string{"http://example.com"}},
			method:     "GET",
			origin:     "http://example.com",
			wantOrigin: "http://example.com",
			wantVary:   true,
			wantCode:   http.StatusOK,
		},
		{
			name:     "disallowed origin",
			cfg:      middleware.CORSConfig{Enabled: enabled(true), Origins: []string{"http://allowed.com"}},
			method:   "GET",
			origin:   "http://denied.com",
			wantVary: true,
			wantCode: http.StatusOK,
		},
		{
			name: "credentials",
			cfg: middleware.CORSConfig{
				Enabled:          enabled(true),
				Origins:          []string{"http://example.com"},
				AllowCredentials: true,
			},
			method:     "GET",
			origin:     "http://example.com",
			wantOrigin: "http://example.com",
			wantCreds:  "true",
			wantVary:   true,
			wantCode:   http.StatusOK,
		},
		{
			name:       "preflight",
			cfg:        middleware.CORSConfig{Enabled: enabled(true), Origins: []string{"http://example.com"}},
			method:     "OPTIONS",
			origin:     "http://example.com",
			wantOrigin: "http://example.com",
			wantVary:   true,
			wantCode:   http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, "/", nil)
			req.Header.Set("Origin", tt.origin)

			middleware.CORS(&tt.cfg)(okHandler()).ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantCode)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("allow-origin: got %q, want %q", got, tt.wantOrigin)
			}
			if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != tt.wantCreds {
				t.Errorf("allow-credentials: got %q, want %q", got, tt.wantCreds)
			}
			if got := rec.Header().Get("Vary") == "Origin"; got != tt.wantVary {
				t.Errorf("vary origin: got %v, want %v", got, tt.wantVary)
			}
		})
	}
}

func TestCORSPreflightSkipsHandler(t *testing.T) {
	cfg := &middleware.CORSConfig{Enabled: enabled(true), Origins: []string{"http://example.com"}}

	var called bool
	handler := middleware.CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest("OPTIONS", "/", nil)
	req.Header.Set("Origin", "http://example.com")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if called {
		t.Error("handler should not be called for preflight")
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/requests?page=2", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusTeapot)
	}

	out := buf.String()
	for _, want := range []string{"method=GET", "uri=\"/requests?page=2\"", "status=418"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s: %s", want, out)
		}
	}
}

func TestLoggerDefaultStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "ok")
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	if !strings.Contains(buf.String(), "status=200") {
		t.Errorf("log output missing status=200: %s", buf.String())
	}
}

func TestMaxBodySize(t *testing.T) {
	tests := []struct {
		name    string
		limit   int64
		body    string
		wantErr bool
	}{
		{"under limit", 16, "small", false},
		{"over limit", 4, "too large", true},
		{"no limit", 0, strings.Repeat("x", 1024), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var readErr error
			handler := middleware.MaxBodySize(tt.limit)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, readErr = io.ReadAll(r.Body)
			}))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/", strings.NewReader(tt.body)))

			var maxErr *http.MaxBytesError
			if got := errors.As(readErr, &maxErr); got != tt.wantErr {
				t.Errorf("max bytes error: got %v, want %v (err: %v)", got, tt.wantErr, readErr)
			}
		})
	}
}

func TestCORSConfigFinalizeDefaults(t *testing.T) {
	cfg := middleware.CORSConfig{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if !cfg.IsEnabled() {
		t.Error("enabled should default to true")
	}
	if len(cfg.AllowedMethods) != 7 {
		t.Errorf("allowed_methods: got %d, want 7", len(cfg.AllowedMethods))
	}
	if len(cfg.AllowedHeaders) != 2 {
		t.Errorf("allowed_headers: got %d, want 2", len(cfg.AllowedHeaders))
	}
	if cfg.MaxAge != 3600 {
		t.Errorf("max_age: got %d, want 3600", cfg.MaxAge)
	}
}

func TestCORSConfigFinalizeEnv(t *testing.T) {
	t.Setenv("TEST_CORS_ENABLED", "false")
	t.Setenv("TEST_CORS_ORIGINS", "http://a.com, http://b.com")
	t.Setenv("TEST_CORS_CREDS", "true")
	t.Setenv("TEST_CORS_MAX_AGE", "60")

	env := &middleware.CORSEnv{
		Enabled:          "TEST_CORS_ENABLED",
		Origins:          "TEST_CORS_ORIGINS",
		AllowCredentials: "TEST_CORS_CREDS",
		MaxAge:           "TEST_CORS_MAX_AGE",
	}

	cfg := middleware.CORSConfig{}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.IsEnabled() {
		t.Error("enabled should be false")
	}
	if !slices.Equal(cfg.Origins, []string{"http://a.com", "http://b.com"}) {
		t.Errorf("origins: got %v", cfg.Origins)
	}
	if !cfg.AllowCredentials {
		t.Error("allow_credentials should be true")
	}
	if cfg.MaxAge != 60 {
		t.Errorf("max_age: got %d, want 60", cfg.MaxAge)
	}
}

func TestCORSConfigMerge(t *testing.T) {
	base := middleware.CORSConfig{
		Enabled:        enabled(true),
		Origins:        []string{"http://base.com"},
		AllowedMethods: []string{"GET"},
		MaxAge:         3600,
	}

	t.Run("omitted enabled keeps base", func(t *testing.T) {
		cfg := base
		cfg.Merge(&middleware.CORSConfig{MaxAge: 7200})

		if !cfg.IsEnabled() {
			t.Error("enabled should remain true")
		}
		if cfg.MaxAge != 7200 {
			t.Errorf("max_age: got %d, want 7200", cfg.MaxAge)
		}
		if !slices.Equal(cfg.Origins, []string{"http://base.com"}) {
			t.Errorf("origins: got %v", cfg.Origins)
		}
	})

	t.Run("explicit overlay wins", func(t *testing.T) {
		cfg := base
		cfg.Merge(&middleware.CORSConfig{
			Enabled: enabled(false),
			Origins: []string{"http://overlay.com"},
		})

		if cfg.IsEnabled() {
			t.Error("enabled should be false after merge")
		}
		if !slices.Equal(cfg.Origins, []string{"http://overlay.com"}) {
			t.Errorf("origins: got %v", cfg.Origins)
		}
		if !base.IsEnabled() {
			t.Error("merge should not mutate the base pointer target")
		}
	})
}
