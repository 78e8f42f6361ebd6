//go:build linux

// File: reactor/pipe_linux.go
// Author: momentics <momentics@gmail.com>

package reactor

import "golang.org/x/sys/unix"

func makeWakePipe() ([2]int, error) {
	var p [2]int
	err := unix.Pipe2(p[:], unix.O_NONBLOCK|unix.O_CLOEXEC)
	return p, err
}
