// Package database provides PostgreSQL connection management with lifecycle coordination.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/JaimeStill/intake/pkg/lifecycle"
)

// Startup ping attempts before the database is reported unreachable.
const (
	startupAttempts = 4
	startupBackoff  = 250 * time.Millisecond
)

// System manages database connections and lifecycle coordination.
type System interface {
	// Connection returns the underlying database connection pool.
	Connection() *sql.DB
	// Ping verifies the database is reachable within the configured connection timeout.
	Ping(ctx context.Context) error
	// Start registers startup and shutdown hooks with the lifecycle coordinator.
	Start(lc *lifecycle.Coordinator) error
}

type database struct {
	conn        *sql.DB
	logger      *slog.Logger
	connTimeout time.Duration
}

// New opens a pool for cfg without connecting. The first connection is made by
// the startup hook registered in Start, or by the first query.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	db, err := sql.Open("pgx", cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &database{
		conn: db,
		logger: logger.With(
			"system", "database",
			"addr", net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			"database", cfg.Name,
		),
		connTimeout: cfg.ConnTimeoutDuration(),
	}, nil
}

func (d *database) Connection() *sql.DB {
	return d.conn
}

func (d *database) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, d.connTimeout)
	defer cancel()

	if err := d.conn.PingContext(pingCtx); err != nil {
		return fmt.Errorf("%w: %w", ErrNotReady, err)
	}
	return nil
}

// Start pings with doubling backoff so a database that is still booting does
// not fail the first readiness check. Shutdown closes the pool.
func (d *database) Start(lc *lifecycle.Coordinator) error {
	lc.OnStartup(func() {
		if err := d.waitReady(lc.Context()); err != nil {
			d.logger.Error("database unreachable", "error", err)
			return
		}
		d.logger.Info("database connection established")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()

		stats := d.conn.Stats()
		if err := d.conn.Close(); err != nil {
			d.logger.Error("database close failed", "error", err)
			return
		}
		d.logger.Info("database connection closed", "open", stats.OpenConnections, "in_use", stats.InUse)
	})

	return nil
}

func (d *database) waitReady(ctx context.Context) error {
	backoff := startupBackoff

	var err error
	for attempt := 1; attempt <= startupAttempts; attempt++ {
		if err = d.Ping(ctx); err == nil {
			return nil
		}
		if attempt == startupAttempts {
			break
		}

		d.logger.Warn("database not ready, retrying", "attempt", attempt, "backoff", backoff, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return fmt.Errorf("after %d attempts: %w", startupAttempts, err)
}
