package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/JaimeStill/intake/internal/config"
	"github.com/JaimeStill/intake/pkg/lifecycle"
)

type httpServer struct {
	srv             *http.Server
	logger          *slog.Logger
	shutdownTimeout time.Duration
	listener        net.Listener
}

func newHTTPServer(cfg *config.ServerConfig, handler http.Handler, logger *slog.Logger) *httpServer {
	logger = logger.With("system", "http")

	return &httpServer{
		srv: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeoutDuration(),
			ReadHeaderTimeout: cfg.ReadHeaderTimeoutDuration(),
			WriteTimeout:      cfg.WriteTimeoutDuration(),
			IdleTimeout:       cfg.IdleTimeoutDuration(),
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
		logger:          logger,
		shutdownTimeout: cfg.ShutdownTimeoutDuration(),
	}
}

// Start binds the listener before returning so an occupied port fails startup.
func (s *httpServer) Start(lc *lifecycle.Coordinator) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.srv.Addr, err)
	}
	s.listener = ln

	go func() {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		s.logger.Info("draining connections", "timeout", s.shutdownTimeout)

		ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		if err := s.srv.Shutdown(ctx); err != nil {
			s.logger.Error("server shutdown error", "error", err)
			return
		}
		s.logger.Info("server stopped")
	})

	return nil
}

// Addr reports the bound address, which differs from the configured one when port 0 is used.
func (s *httpServer) Addr() string {
	if s.listener == nil {
		return s.srv.Addr
	}
	return s.listener.Addr().String()
}
