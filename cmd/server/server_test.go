package main

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/intake/internal/config"
	"github.com/JaimeStill/intake/internal/events"
	"github.com/JaimeStill/intake/pkg/lifecycle"
	"github.com/JaimeStill/intake/pkg/middleware"
	"github.com/JaimeStill/intake/pkg/openapi"
	"github.com/JaimeStill/intake/pkg/pagination"
)

func loopback() *config.ServerConfig {
	return &config.ServerConfig{
		Host:              "127.0.0.1",
		Port:              0,
		ReadTimeout:       "5s",
		ReadHeaderTimeout: "1s",
		WriteTimeout:      "5s",
		IdleTimeout:       "5s",
		ShutdownTimeout:   "2s",
	}
}

func TestHTTPServerLifecycle(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "pong")
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	lc := lifecycle.New()
	srv := newHTTPServer(loopback(), handler, logger)
	if err := srv.Start(lc); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	resp, err := http.Get("http://" + srv.Addr() + "/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if string(body) != "pong" {
		t.Errorf("body: got %q, want pong", body)
	}

	t.Run("occupied port fails start", func(t *testing.T) {
		_, port, err := net.SplitHostPort(srv.Addr())
		if err != nil {
			t.Fatalf("split addr: %v", err)
		}
		cfg := loopback()
		cfg.Port, _ = strconv.Atoi(port)

		err = newHTTPServer(cfg, handler, logger).Start(lifecycle.New())
		if err == nil || !strings.Contains(err.Error(), "listen") {
			t.Errorf("expected listen error, got %v", err)
		}
	})

	if err := lc.Shutdown(2 * time.Second); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}

	if _, err := http.Get("http://" + srv.Addr() + "/"); err == nil {
		t.Error("server should refuse connections after shutdown")
	}
}

func TestServerRun(t *testing.T) {
	cfg := &config.Config{
		Server: *loopback(),
		Store:  config.StoreConfig{Driver: config.StoreDriverMemory},
		Events: events.Config{Driver: events.DriverNone, Timeout: "1s"},
		API: config.APIConfig{
			BasePath:    "/requests",
			MaxBodySize: "64KB",
			CORS:        middleware.CORSConfig{},
			Pagination:  pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
		},
		OpenAPI:         openapi.Config{Title: "Intake API", DocsPath: "/docs"},
		ShutdownTimeout: "2s",
		Version:         "0.1.0",
		ServiceName:     "intake",
	}

	srv, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("new server failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := srv.Run(ctx); err != nil {
		t.Errorf("run returned %v", err)
	}
}
