//go:build !linux && !darwin

// File: transport/sys_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub syscall layer for unsupported platforms.

package transport

import "github.com/momentics/hioload-echo/api"

func sysSocket() (int, error)      { return invalidFd, api.ErrNotSupported }
func sysSetReuseAddr(fd int) error { return api.ErrNotSupported }
func sysSetNonblock(fd int) error  { return api.ErrNotSupported }
func sysBind(fd, port int) error   { return api.ErrNotSupported }
func sysListen(fd int) error       { return api.ErrNotSupported }
func sysClose(fd int) error        { return api.ErrNotSupported }

func sysAccept(lfd int) (int, string, error) { return invalidFd, "", api.ErrNotSupported }

// Read is unavailable on this platform.
func Read(fd int, p []byte) (int, error) { return 0, api.ErrNotSupported }

// Write is unavailable on this platform.
func Write(fd int, p []byte) (int, error) { return 0, api.ErrNotSupported }

// Shutdown is unavailable on this platform.
func Shutdown(fd int) error { return api.ErrNotSupported }

// CloseFd is unavailable on this platform.
func CloseFd(fd int) error { return api.ErrNotSupported }

// IsWouldBlock always reports false on unsupported platforms.
func IsWouldBlock(err error) bool { return false }

// IsTransientAcceptError always reports false on unsupported platforms.
func IsTransientAcceptError(err error) bool { return false }
