//go:build linux || darwin

// File: reactor/select_unix.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// select(2)-based readiness poller for Unix-like platforms.

package reactor

import (
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-echo/api"
)

// fdSetSize caps registrable descriptors; fd_set is a fixed bitmap of
// FD_SETSIZE (1024) slots on both Linux and Darwin.
const fdSetSize = 1024

// selectPoller implements api.Poller over select(2). A non-blocking pipe
// is always part of the interest set so Wakeup can interrupt an idle
// Wait from another goroutine.
type selectPoller struct {
	mu       sync.Mutex
	interest map[int]struct{}
	wakeR    int
	wakeW    int
	closed   bool
}

// NewSelectPoller creates a poller with an empty interest set.
func NewSelectPoller() (api.Poller, error) {
	p, err := makeWakePipe()
	if err != nil {
		return nil, fmt.Errorf("wake pipe: %w: %w", api.ErrResource, err)
	}
	return &selectPoller{
		interest: make(map[int]struct{}),
		wakeR:    p[0],
		wakeW:    p[1],
	}, nil
}

// Add registers a descriptor. select(2) cannot watch descriptors at or
// above FD_SETSIZE, so those are rejected up front.
func (p *selectPoller) Add(fd int) error {
	if fd < 0 || fd >= fdSetSize {
		return fmt.Errorf("descriptor %d exceeds select capacity %d: %w",
			fd, fdSetSize, api.ErrResource)
	}
	p.mu.Lock()
	p.interest[fd] = struct{}{}
	p.mu.Unlock()
	return nil
}

// Remove drops a descriptor from the interest set.
func (p *selectPoller) Remove(fd int) error {
	p.mu.Lock()
	delete(p.interest, fd)
	p.mu.Unlock()
	return nil
}

// Wait blocks with no timeout until at least one registered descriptor
// is readable, then reports the ready ones in ascending order. EINTR
// restarts the call. A wakeup write yields an empty result so the owner
// can re-check its quit condition.
func (p *selectPoller) Wait() ([]int, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, fmt.Errorf("wait on closed poller: %w", api.ErrInvalidState)
	}
	fds := make([]int, 0, len(p.interest))
	for fd := range p.interest {
		fds = append(fds, fd)
	}
	p.mu.Unlock()
	sort.Ints(fds)

	var set unix.FdSet
	for {
		set.Zero()
		set.Set(p.wakeR)
		max := p.wakeR
		for _, fd := range fds {
			set.Set(fd)
			if fd > max {
				max = fd
			}
		}
		n, err := unix.Select(max+1, &set, nil, nil, nil)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return nil, fmt.Errorf("select: %w", err)
		}
		if n <= 0 {
			continue
		}
		if set.IsSet(p.wakeR) {
			p.drainWake()
		}
		ready := make([]int, 0, n)
		for _, fd := range fds {
			if set.IsSet(fd) {
				ready = append(ready, fd)
			}
		}
		return ready, nil
	}
}

// Wakeup writes one byte into the wake pipe. A full pipe already has a
// pending wakeup, so EAGAIN is not an error.
func (p *selectPoller) Wakeup() error {
	_, err := unix.Write(p.wakeW, []byte{1})
	if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
		return nil
	}
	return err
}

// Close releases the wake pipe. Registered descriptors stay open, they
// belong to the caller.
func (p *selectPoller) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	unix.Close(p.wakeW)
	return unix.Close(p.wakeR)
}

func (p *selectPoller) drainWake() {
	var buf [64]byte
	for {
		if _, err := unix.Read(p.wakeR, buf[:]); err != nil {
			return
		}
	}
}

// WaitWritable blocks until fd accepts writes again. Used by callers
// that hit EAGAIN mid-write and must finish the pending bytes before
// touching any other descriptor.
func WaitWritable(fd int) error {
	var set unix.FdSet
	for {
		set.Zero()
		set.Set(fd)
		_, err := unix.Select(fd+1, nil, &set, nil, nil)
		if err == unix.EINTR {
			continue
		}
		return err
	}
}
