//go:build !linux && !darwin

// File: reactor/reactor_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub implementation for unsupported platforms.

package reactor

import "github.com/momentics/hioload-echo/api"

// NewSelectPoller returns an error for unsupported platforms.
func NewSelectPoller() (api.Poller, error) {
	return nil, api.ErrNotSupported
}

// WaitWritable is unavailable on this platform.
func WaitWritable(fd int) error {
	return api.ErrNotSupported
}
