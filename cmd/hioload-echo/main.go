// File: cmd/hioload-echo/main.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Command hioload-echo runs the TCP echo server on the port given as the
// single positional argument. SIGINT/SIGTERM trigger a graceful stop.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/momentics/hioload-echo/server"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	if len(args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <port>\n", args[0])
		return 2
	}
	port, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid port %q: %v\n", args[1], err)
		return 2
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	srv, err := server.New(server.DefaultConfig(),
		server.WithPort(port),
		server.WithLogger(log),
	)
	if err != nil {
		log.WithError(err).Error("setup failed")
		return 1
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.WithField("signal", sig.String()).Info("shutting down")
		srv.Shutdown()
	}()

	if err := srv.Run(); err != nil {
		log.WithError(err).Error("server terminated")
		return 1
	}
	return 0
}
