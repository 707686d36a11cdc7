// Package events publishes domain events to an external broker.
// Publishing is best-effort: callers log failures and carry on.
// Broker drivers deliver from a bounded background queue, so Publish never waits on the network.
package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/intake/pkg/lifecycle"
)

// RequestCreated is emitted after a request has been stored.
const RequestCreated = "request.created"

// Event is the JSON payload written to the broker.
type Event struct {
	Name       string    `json:"event"`
	ID         string    `json:"id"`
	Status     string    `json:"status"`
	Category   string    `json:"category"`
	Priority   string    `json:"priority"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Errors returned by Publish when an event cannot be queued.
var (
	ErrQueueFull = errors.New("event queue full")
	ErrClosed    = errors.New("event publisher closed")
)

// Publisher delivers events to a broker.
type Publisher interface {
	// Publish hands e off for delivery without blocking on the broker.
	Publish(ctx context.Context, e Event) error
	// Start registers startup and shutdown hooks with the lifecycle coordinator.
	Start(lc *lifecycle.Coordinator) error
}

// sink delivers one event to a broker.
type sink interface {
	deliver(ctx context.Context, e Event) error
	check(ctx context.Context) error
	close() error
}

// New creates the Publisher selected by cfg.Driver.
func New(cfg *Config, logger *slog.Logger) (Publisher, error) {
	logger = logger.With("system", "events", "driver", cfg.Driver)

	switch cfg.Driver {
	case DriverNone:
		return Discard(), nil
	case DriverRedis:
		return newQueue(newRedisSink(cfg), cfg, logger), nil
	case DriverKafka:
		return newQueue(newKafkaSink(cfg), cfg, logger), nil
	default:
		return nil, fmt.Errorf("unsupported events driver: %s", cfg.Driver)
	}
}

type discard struct{}

// Discard returns a Publisher that drops every event.
func Discard() Publisher {
	return discard{}
}

func (discard) Publish(context.Context, Event) error { return nil }

func (discard) Start(*lifecycle.Coordinator) error { return nil }
