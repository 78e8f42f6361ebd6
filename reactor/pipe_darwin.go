//go:build darwin

// File: reactor/pipe_darwin.go
// Author: momentics <momentics@gmail.com>
//
// Darwin lacks pipe2(2); flags are applied per descriptor after pipe.

package reactor

import "golang.org/x/sys/unix"

func makeWakePipe() ([2]int, error) {
	var p [2]int
	if err := unix.Pipe(p[:]); err != nil {
		return p, err
	}
	for _, fd := range p {
		unix.CloseOnExec(fd)
		if err := unix.SetNonblock(fd, true); err != nil {
			unix.Close(p[0])
			unix.Close(p[1])
			return p, err
		}
	}
	return p, nil
}
