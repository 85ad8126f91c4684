// Package lifecycle coordinates subsystem startup and shutdown. Subsystems
// register hooks during initialization; the coordinator runs startup hooks to
// completion before reporting readiness, and fans shutdown out to all
// registered hooks with a bounded wait.
package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// ReadinessChecker reports whether startup has completed.
type ReadinessChecker interface {
	Ready() bool
}

// Coordinator tracks startup and shutdown hooks for all subsystems.
type Coordinator struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	startup  []func()
	shutdown sync.WaitGroup

	ready atomic.Bool
}

// New creates a Coordinator with a fresh root context.
func New() *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Context returns the coordinator's root context, cancelled on Shutdown.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// Ready reports whether all startup hooks have completed.
func (c *Coordinator) Ready() bool {
	return c.ready.Load()
}

// OnStartup registers a hook to run during WaitForStartup.
func (c *Coordinator) OnStartup(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startup = append(c.startup, fn)
}

// OnShutdown registers a hook that runs for the life of the service.
// Hooks should block on Context().Done() before performing teardown.
func (c *Coordinator) OnShutdown(fn func()) {
	c.shutdown.Add(1)
	go func() {
		defer c.shutdown.Done()
		fn()
	}()
}

// WaitForStartup runs all registered startup hooks and marks the coordinator ready.
func (c *Coordinator) WaitForStartup() {
	c.mu.Lock()
	hooks := c.startup
	c.startup = nil
	c.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}

	c.ready.Store(true)
}

// Shutdown cancels the root context and waits for all shutdown hooks to
// complete, returning an error if they do not finish within timeout.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.cancel()

	done := make(chan struct{})
	go func() {
		c.shutdown.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("shutdown timed out after %s", timeout)
	}
}
