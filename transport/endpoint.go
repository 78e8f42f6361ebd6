// File: transport/endpoint.go
// Package transport implements the listening endpoint.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package transport

import (
	"fmt"

	"github.com/momentics/hioload-echo/api"
)

// invalidFd marks a released endpoint. Once set, the descriptor must
// never be used again.
const invalidFd = -1

// Endpoint owns exactly one bound, non-blocking TCP socket. It is not
// safe for concurrent use and must not be copied; the server loop is its
// sole owner.
type Endpoint struct {
	fd        int
	port      int
	listening bool
}

// NewEndpoint allocates a stream socket, enables address reuse, switches
// it to non-blocking mode and binds it to all local addresses on port.
// Any step failing after socket creation closes the descriptor before
// the error propagates, so a failed constructor never leaks a descriptor.
func NewEndpoint(port int) (*Endpoint, error) {
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("port %d out of range (0, 65535]: %w", port, api.ErrInvalidArgument)
	}
	fd, err := sysSocket()
	if err != nil {
		return nil, fmt.Errorf("socket create: %w: %w", api.ErrResource, err)
	}
	ep := &Endpoint{fd: fd, port: port}
	if err := sysSetReuseAddr(fd); err != nil {
		ep.Close()
		return nil, fmt.Errorf("setsockopt SO_REUSEADDR: %w: %w", api.ErrResource, err)
	}
	if err := sysSetNonblock(fd); err != nil {
		ep.Close()
		return nil, fmt.Errorf("set nonblock: %w: %w", api.ErrResource, err)
	}
	if err := sysBind(fd, port); err != nil {
		ep.Close()
		return nil, fmt.Errorf("bind :%d: %w: %w", port, api.ErrBind, err)
	}
	return ep, nil
}

// Listen transitions the endpoint from bound to listening with the
// platform-maximum backlog. The transition happens exactly once.
func (e *Endpoint) Listen() error {
	if e.fd == invalidFd {
		return fmt.Errorf("listen on released endpoint: %w", api.ErrInvalidState)
	}
	if e.listening {
		return fmt.Errorf("already listening: %w", api.ErrInvalidState)
	}
	if err := sysListen(e.fd); err != nil {
		return fmt.Errorf("listen: %w: %w", api.ErrResource, err)
	}
	e.listening = true
	return nil
}

// Accept takes one pending connection off the backlog. The returned
// descriptor is already non-blocking and close-on-exec. Would-block and
// other accept errors are returned raw so the caller can classify them
// with IsWouldBlock and IsTransientAcceptError.
func (e *Endpoint) Accept() (fd int, remote string, err error) {
	if e.fd == invalidFd {
		return invalidFd, "", fmt.Errorf("accept on released endpoint: %w", api.ErrInvalidState)
	}
	return sysAccept(e.fd)
}

// Fd returns the underlying descriptor for readiness polling.
func (e *Endpoint) Fd() int { return e.fd }

// Port returns the port the endpoint was bound to.
func (e *Endpoint) Port() int { return e.port }

// Listening reports whether Listen has completed.
func (e *Endpoint) Listening() bool { return e.listening }

// Close releases the descriptor exactly once; further calls are no-ops.
func (e *Endpoint) Close() error {
	if e.fd == invalidFd {
		return nil
	}
	fd := e.fd
	e.fd = invalidFd
	e.listening = false
	return sysClose(fd)
}
