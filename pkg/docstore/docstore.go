// Package docstore provides MongoDB connection management with lifecycle coordination.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/JaimeStill/intake/pkg/lifecycle"
)

// ErrNotReady indicates the document store could not be reached.
var ErrNotReady = errors.New("document store not ready")

// System manages a MongoDB client and lifecycle coordination.
type System interface {
	// Database returns the configured database handle.
	Database() *mongo.Database
	// Ping verifies the primary is reachable within the configured connection timeout.
	Ping(ctx context.Context) error
	// OnStart registers fn to run once the connection has been verified at startup.
	OnStart(fn func(ctx context.Context) error)
	// Start registers startup and shutdown hooks with the lifecycle coordinator.
	Start(lc *lifecycle.Coordinator) error
}

type docstore struct {
	client      *mongo.Client
	db          *mongo.Database
	logger      *slog.Logger
	connTimeout time.Duration
	onStart     []func(ctx context.Context) error
}

// New creates a document store system from the given configuration.
// The driver connects lazily; no network round trip happens until Start or Ping.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnTimeoutDuration()).
		SetServerSelectionTimeout(cfg.ConnTimeoutDuration())

	client, err := mongo.Connect(context.Background(), opts)
	if err != nil {
		return nil, fmt.Errorf("create mongo client: %w", err)
	}

	return &docstore{
		client:      client,
		db:          client.Database(cfg.Database),
		logger:      logger.With("system", "docstore"),
		connTimeout: cfg.ConnTimeoutDuration(),
	}, nil
}

func (d *docstore) Database() *mongo.Database {
	return d.db
}

func (d *docstore) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, d.connTimeout)
	defer cancel()

	if err := d.client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: %w", ErrNotReady, err)
	}
	return nil
}

func (d *docstore) OnStart(fn func(ctx context.Context) error) {
	d.onStart = append(d.onStart, fn)
}

func (d *docstore) Start(lc *lifecycle.Coordinator) error {
	d.logger.Info("starting document store connection")

	lc.OnStartup(func() {
		if err := d.Ping(lc.Context()); err != nil {
			d.logger.Error("document store ping failed", "error", err)
			return
		}

		for _, fn := range d.onStart {
			if err := fn(lc.Context()); err != nil {
				d.logger.Error("document store startup hook failed", "error", err)
			}
		}

		d.logger.Info("document store connection established", "database", d.db.Name())
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		d.logger.Info("closing document store connection")

		ctx, cancel := context.WithTimeout(context.Background(), d.connTimeout)
		defer cancel()

		if err := d.client.Disconnect(ctx); err != nil {
			d.logger.Error("document store disconnect failed", "error", err)
			return
		}

		d.logger.Info("document store connection closed")
	})

	return nil
}
