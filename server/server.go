// File: server/server.go
// Package server wires the endpoint, poller, buffer pool and control plane.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/eapache/queue"

	"github.com/momentics/hioload-echo/adapters"
	"github.com/momentics/hioload-echo/api"
	"github.com/momentics/hioload-echo/pool"
	"github.com/momentics/hioload-echo/reactor"
	"github.com/momentics/hioload-echo/transport"
)

// New constructs a Server: it validates configuration, binds the
// listening endpoint and prepares the poller and control plane. Nothing
// runs until Run is called. Construction failures release every
// descriptor acquired so far.
func New(cfg *Config, opts ...Option) (*Server, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = DefaultConfig().Logger
	}
	if cfg.ReadBufferSize <= 0 {
		return nil, fmt.Errorf("read buffer size %d: %w", cfg.ReadBufferSize, api.ErrInvalidArgument)
	}

	// 1. Control plane: dynamic config, metrics, debug probes.
	ctrl := adapters.NewControlAdapter()

	// 2. Listening endpoint: bound and non-blocking, not yet listening.
	ep, err := transport.NewEndpoint(cfg.Port)
	if err != nil {
		return nil, err
	}

	// 3. Readiness poller with wakeup support.
	poller, err := reactor.NewSelectPoller()
	if err != nil {
		ep.Close()
		return nil, err
	}

	// 4. Connection id generator.
	idNode, err := snowflake.NewNode(cfg.SnowflakeNode)
	if err != nil {
		poller.Close()
		ep.Close()
		return nil, fmt.Errorf("snowflake node %d: %w: %w", cfg.SnowflakeNode, api.ErrInvalidArgument, err)
	}

	s := &Server{
		cfg:     cfg,
		log:     cfg.Logger,
		control: ctrl,
		bufPool: pool.NewBytePool(cfg.ReadBufferSize),
		ep:      ep,
		poller:  poller,
		idNode:  idNode,
		clients: make(map[int]*clientConn),
		events:  queue.New(),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	ctrl.SetConfig(map[string]any{
		"port":             cfg.Port,
		"read_buffer_size": cfg.ReadBufferSize,
	})
	ctrl.RegisterDebugProbe("conns.fds", s.trackedFds)
	return s, nil
}

// Control exposes the runtime control plane: metrics snapshot, dynamic
// config and debug probes.
func (s *Server) Control() api.Control { return s.control }

// Port returns the port the endpoint is bound to.
func (s *Server) Port() int { return s.ep.Port() }

// Shutdown asks the loop to stop and wakes it out of its blocking wait.
// Idempotent; safe to call from any goroutine. Run tears down every
// tracked client and returns nil afterwards.
func (s *Server) Shutdown() {
	s.stopOnce.Do(func() {
		close(s.quit)
		_ = s.poller.Wakeup()
	})
}

// Done is closed once Run has finished its teardown.
func (s *Server) Done() <-chan struct{} { return s.done }
