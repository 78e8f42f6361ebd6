//go:build darwin

// File: transport/accept_darwin.go
// Author: momentics <momentics@gmail.com>
//
// Darwin has no accept4(2); flags are applied after accept. A failure to
// switch the fresh descriptor to non-blocking closes it immediately, a
// blocking client inside the loop would stall every other connection.

package transport

import "golang.org/x/sys/unix"

func sysAccept(lfd int) (int, string, error) {
	fd, sa, err := unix.Accept(lfd)
	if err != nil {
		return invalidFd, "", err
	}
	unix.CloseOnExec(fd)
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return invalidFd, "", err
	}
	return fd, formatSockaddr(sa), nil
}
