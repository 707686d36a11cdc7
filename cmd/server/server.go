package main

import (
	"context"

	"github.com/JaimeStill/intake/internal/config"
	"github.com/JaimeStill/intake/internal/infrastructure"
)

// Server owns the infrastructure, the mounted modules, and the HTTP listener.
type Server struct {
	cfg     *config.Config
	infra   *infrastructure.Infrastructure
	modules *Modules
	http    *httpServer
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra, cfg.ServiceName)
	modules.Mount(router)

	return &Server{
		cfg:     cfg,
		infra:   infra,
		modules: modules,
		http:    newHTTPServer(&cfg.Server, router, infra.Logger),
	}, nil
}

// Run starts every subsystem, blocks until ctx is done, then shuts down
// within the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	logger := s.infra.Logger

	if err := s.infra.Start(); err != nil {
		return err
	}
	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		s.infra.Lifecycle.Shutdown(s.cfg.ShutdownTimeoutDuration())
		return err
	}

	logger.Info(
		"service started",
		"addr", s.http.Addr(),
		"version", s.cfg.Version,
		"env", s.cfg.Env(),
		"store", s.cfg.Store.Driver,
		"events", s.cfg.Events.Driver,
	)

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		logger.Info("all subsystems ready")
	}()

	<-ctx.Done()

	logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(s.cfg.ShutdownTimeoutDuration())
}
