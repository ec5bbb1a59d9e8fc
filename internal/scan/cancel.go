package scan

import "sync/atomic"

// CancelToken is a process-wide cooperative cancellation flag, polled
// between files in the Hasher and between directory batches in the Walker
// (spec section 4.6). It may be shared across goroutines; Cancel and
// Cancelled are both safe for concurrent use.
//
// A CancelToken is not tied to context.Context because cancellation here
// must survive past the point an individual worker's context is cancelled
// -- other in-flight workers keep running until they next poll, per the
// cooperative (non-preemptive) semantics in spec section 5.
type CancelToken struct {
	flag atomic.Bool
}

// NewCancelToken returns a fresh, unset CancelToken.
func NewCancelToken() *CancelToken {
	return &CancelToken{}
}

// Cancel sets the cancellation flag. Idempotent.
func (c *CancelToken) Cancel() {
	c.flag.Store(true)
}

// Cancelled reports whether Cancel has been called.
func (c *CancelToken) Cancelled() bool {
	return c.flag.Load()
}
