// Package infrastructure provides core service initialization for application startup.
// It assembles the logger, lifecycle coordinator, store connection, and event publisher
// that domain systems require.
package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/intake/internal/config"
	"github.com/JaimeStill/intake/internal/events"
	"github.com/JaimeStill/intake/pkg/database"
	"github.com/JaimeStill/intake/pkg/docstore"
	"github.com/JaimeStill/intake/pkg/lifecycle"
)

// StoreStatus reports the reachability of the configured store.
type StoreStatus string

const (
	StoreUp       StoreStatus = "up"
	StoreStarting StoreStatus = "starting"
	StoreDown     StoreStatus = "down"
)

// Infrastructure holds the core systems required by all domain modules.
// Exactly one of Database and Documents is set for the postgres and mongo
// drivers; the memory driver uses neither.
type Infrastructure struct {
	Lifecycle   *lifecycle.Coordinator
	Logger      *slog.Logger
	StoreDriver string
	Database    database.System
	Documents   docstore.System
	Events      events.Publisher
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	return NewWithLogger(cfg, slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

// NewWithLogger creates an Infrastructure that logs to logger.
func NewWithLogger(cfg *config.Config, logger *slog.Logger) (*Infrastructure, error) {
	infra := &Infrastructure{
		Lifecycle:   lifecycle.New(),
		Logger:      logger,
		StoreDriver: cfg.Store.Driver,
	}

	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		db, err := database.New(&cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("database init failed: %w", err)
		}
		infra.Database = db
	case config.StoreDriverMongo:
		docs, err := docstore.New(&cfg.Mongo, logger)
		if err != nil {
			return nil, fmt.Errorf("docstore init failed: %w", err)
		}
		infra.Documents = docs
	}

	publisher, err := events.New(&cfg.Events, logger)
	if err != nil {
		return nil, fmt.Errorf("events init failed: %w", err)
	}
	infra.Events = publisher

	return infra, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if i.Database != nil {
		if err := i.Database.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("database start failed: %w", err)
		}
	}
	if i.Documents != nil {
		if err := i.Documents.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("docstore start failed: %w", err)
		}
	}
	if err := i.Events.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("events start failed: %w", err)
	}
	return nil
}

// StoreStatus reports starting until startup hooks complete, then pings the store.
func (i *Infrastructure) StoreStatus(ctx context.Context) StoreStatus {
	if !i.Lifecycle.Ready() {
		return StoreStarting
	}

	var err error
	switch {
	case i.Database != nil:
		err = i.Database.Ping(ctx)
	case i.Documents != nil:
		err = i.Documents.Ping(ctx)
	}

	if err != nil {
		i.Logger.Warn("store ping failed", "driver", i.StoreDriver, "error", err)
		return StoreDown
	}
	return StoreUp
}
