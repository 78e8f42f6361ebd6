//go:build linux

// File: transport/accept_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux accept path: accept4(2) marks the client descriptor non-blocking
// and close-on-exec in the same syscall.

package transport

import "golang.org/x/sys/unix"

func sysAccept(lfd int) (int, string, error) {
	fd, sa, err := unix.Accept4(lfd, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
	if err != nil {
		return invalidFd, "", err
	}
	return fd, formatSockaddr(sa), nil
}
