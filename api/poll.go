// File: api/poll.go
// Package api
// Author: momentics <momentics@gmail.com>
//
// Readiness-poll abstraction: one blocking suspension point over a set of
// registered descriptors. Implementations live under reactor/.

package api

// Poller is the single blocking primitive of the event loop. All other
// socket operations are non-blocking; Wait is the only call allowed to
// suspend the calling goroutine.
type Poller interface {
	// Add registers a descriptor in the interest set.
	Add(fd int) error

	// Remove drops a descriptor from the interest set.
	Remove(fd int) error

	// Wait blocks until at least one registered descriptor is readable and
	// returns the ready descriptors in ascending numeric order. A Wakeup
	// call interrupts Wait, which then returns an empty slice.
	Wait() ([]int, error)

	// Wakeup interrupts a concurrent Wait. Safe to call from any goroutine.
	Wakeup() error

	// Close releases poller resources. The poller must not be used after.
	Close() error
}
