// Package lifecycle coordinates startup and shutdown of long-lived subsystems.
package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// State describes where the coordinator is in the application lifecycle.
type State string

const (
	StateStarting     State = "starting"
	StateReady        State = "ready"
	StateShuttingDown State = "shutting_down"
)

// Coordinator manages startup and shutdown hooks for the application lifecycle.
type Coordinator struct {
	ctx        context.Context
	cancel     context.CancelFunc
	startedAt  time.Time
	startupWg  sync.WaitGroup
	shutdownWg sync.WaitGroup
	state      State
	stateMu    sync.RWMutex
}

// New creates a Coordinator with a cancellable context.
func New() *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		ctx:       ctx,
		cancel:    cancel,
		startedAt: time.Now(),
		state:     StateStarting,
	}
}

// Context returns the coordinator's context, cancelled on shutdown.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// OnStartup registers a function to run concurrently during startup.
func (c *Coordinator) OnStartup(fn func()) {
	c.startupWg.Go(fn)
}

// OnShutdown registers a function to run concurrently during shutdown.
// Shutdown hooks should block on <-c.Context().Done() before executing cleanup.
func (c *Coordinator) OnShutdown(fn func()) {
	c.shutdownWg.Go(fn)
}

// Ready returns true after all startup hooks have completed and before shutdown begins.
func (c *Coordinator) Ready() bool {
	return c.State() == StateReady
}

// State returns the current lifecycle state.
func (c *Coordinator) State() State {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.state
}

// Uptime reports the time elapsed since the coordinator was created.
func (c *Coordinator) Uptime() time.Duration {
	return time.Since(c.startedAt)
}

// WaitForStartup blocks until all startup hooks have completed and marks the coordinator ready.
func (c *Coordinator) WaitForStartup() {
	c.startupWg.Wait()
	c.setState(StateReady)
}

// Shutdown cancels the context and waits for shutdown hooks to complete
// within the given timeout.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.setState(StateShuttingDown)
	c.cancel()

	done := make(chan struct{})
	go func() {
		c.shutdownWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("shutdown timeout after %v", timeout)
	}
}

func (c *Coordinator) setState(s State) {
	c.stateMu.Lock()
	c.state = s
	c.stateMu.Unlock()
}
