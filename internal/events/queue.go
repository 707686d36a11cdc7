package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/JaimeStill/intake/pkg/lifecycle"
)

type queue struct {
	sink    sink
	events  chan Event
	timeout time.Duration
	logger  *slog.Logger

	mu     sync.RWMutex
	closed bool
}

func newQueue(s sink, cfg *Config, logger *slog.Logger) *queue {
	size := cfg.QueueSize
	if size < 1 {
		size = DefaultQueueSize
	}
	return &queue{
		sink:    s,
		events:  make(chan Event, size),
		timeout: cfg.TimeoutDuration(),
		logger:  logger,
	}
}

// Publish enqueues e and returns immediately.
func (q *queue) Publish(_ context.Context, e Event) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrClosed
	}

	select {
	case q.events <- e:
		return nil
	default:
		return ErrQueueFull
	}
}

// Start checks the broker at startup and runs the delivery worker until shutdown,
// when queued events are drained before the sink is closed.
func (q *queue) Start(lc *lifecycle.Coordinator) error {
	lc.OnStartup(func() {
		ctx, cancel := context.WithTimeout(lc.Context(), q.timeout)
		defer cancel()

		if err := q.sink.check(ctx); err != nil {
			q.logger.Warn("event broker unreachable", "error", err)
			return
		}
		q.logger.Info("event broker reachable")
	})

	lc.OnShutdown(func() {
		q.run(lc.Context())
	})

	return nil
}

func (q *queue) run(ctx context.Context) {
	for {
		select {
		case e := <-q.events:
			q.deliver(e)
		case <-ctx.Done():
			q.drain()
			return
		}
	}
}

func (q *queue) drain() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	pending := len(q.events)
	for range pending {
		q.deliver(<-q.events)
	}

	if err := q.sink.close(); err != nil {
		q.logger.Error("event sink close failed", "error", err)
		return
	}
	q.logger.Info("event publisher closed", "drained", pending)
}

func (q *queue) deliver(e Event) {
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	if err := q.sink.deliver(ctx, e); err != nil {
		q.logger.Warn("event delivery failed", "event", e.Name, "id", e.ID, "error", err)
	}
}
