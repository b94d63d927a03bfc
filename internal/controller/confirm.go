package controller

import "sync"

// Confirmation interposes an explicit user confirmation between "requested"
// and "executed". It holds the pending payload and guards against double
// submission while the mutation is in flight.
type Confirmation[T any] struct {
	mu       sync.Mutex
	pending  *T
	inFlight bool
}

// Request stages a payload awaiting confirmation. A request made while a
// mutation is in flight is ignored.
func (c *Confirmation[T]) Request(payload T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return false
	}
	c.pending = &payload
	return true
}

// Pending returns the staged payload, if any
func (c *Confirmation[T]) Pending() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		var zero T
		return zero, false
	}
	return *c.pending, true
}

// Confirm takes the staged payload and marks the mutation in flight. The
// second return is false when nothing is pending or a mutation is already
// running; the confirm action is effectively disabled then.
func (c *Confirmation[T]) Confirm() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil || c.inFlight {
		var zero T
		return zero, false
	}
	payload := *c.pending
	c.pending = nil
	c.inFlight = true
	return payload, true
}

// Done marks the in-flight mutation finished
func (c *Confirmation[T]) Done() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
}

// Cancel discards the staged payload without side effects
func (c *Confirmation[T]) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = nil
}

// InFlight reports whether a confirmed mutation is still running
func (c *Confirmation[T]) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}
