//go:build linux || darwin

// File: transport/sys_unix.go
// Author: momentics <momentics@gmail.com>
//
// Raw socket syscalls for Unix-like platforms, built on golang.org/x/sys.
// Everything here is non-blocking; would-block surfaces as EAGAIN and is
// classified by the helpers at the bottom, never treated as a hard error.

package transport

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

func sysSocket() (int, error) {
	return unix.Socket(unix.AF_INET, unix.SOCK_STREAM, unix.IPPROTO_TCP)
}

func sysSetReuseAddr(fd int) error {
	return unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
}

func sysSetNonblock(fd int) error {
	return unix.SetNonblock(fd, true)
}

func sysBind(fd, port int) error {
	// Zero Addr is INADDR_ANY.
	return unix.Bind(fd, &unix.SockaddrInet4{Port: port})
}

func sysListen(fd int) error {
	return unix.Listen(fd, unix.SOMAXCONN)
}

func sysClose(fd int) error {
	return unix.Close(fd)
}

// Read reads up to len(p) bytes from a non-blocking descriptor.
func Read(fd int, p []byte) (int, error) {
	return unix.Read(fd, p)
}

// Write writes p to a non-blocking descriptor and may write fewer bytes
// than len(p); the caller owns the partial-write policy.
func Write(fd int, p []byte) (int, error) {
	return unix.Write(fd, p)
}

// Shutdown disables both directions of a connected socket.
func Shutdown(fd int) error {
	return unix.Shutdown(fd, unix.SHUT_RDWR)
}

// CloseFd closes a client descriptor.
func CloseFd(fd int) error {
	return unix.Close(fd)
}

// IsWouldBlock reports whether err means "no data or capacity right now".
func IsWouldBlock(err error) bool {
	return errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK)
}

// IsTransientAcceptError reports whether an accept failure is recoverable.
// Resource pressure and aborted handshakes come and go; everything else
// (EBADF, EINVAL, ENOTSOCK, ...) indicates a broken listener.
func IsTransientAcceptError(err error) bool {
	for _, e := range []error{
		unix.EAGAIN, unix.EWOULDBLOCK, unix.EINTR, unix.ECONNABORTED,
		unix.EMFILE, unix.ENFILE, unix.ENOBUFS, unix.ENOMEM,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// formatSockaddr renders a peer address as host:port for logs.
func formatSockaddr(sa unix.Sockaddr) string {
	switch v := sa.(type) {
	case *unix.SockaddrInet4:
		return fmt.Sprintf("%d.%d.%d.%d:%d", v.Addr[0], v.Addr[1], v.Addr[2], v.Addr[3], v.Port)
	case *unix.SockaddrInet6:
		return fmt.Sprintf("[%x:%x:%x:%x:%x:%x:%x:%x]:%d",
			uint16(v.Addr[0])<<8|uint16(v.Addr[1]),
			uint16(v.Addr[2])<<8|uint16(v.Addr[3]),
			uint16(v.Addr[4])<<8|uint16(v.Addr[5]),
			uint16(v.Addr[6])<<8|uint16(v.Addr[7]),
			uint16(v.Addr[8])<<8|uint16(v.Addr[9]),
			uint16(v.Addr[10])<<8|uint16(v.Addr[11]),
			uint16(v.Addr[12])<<8|uint16(v.Addr[13]),
			uint16(v.Addr[14])<<8|uint16(v.Addr[15]),
			v.Port)
	default:
		return "unknown"
	}
}
