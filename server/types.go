// File: server/types.go
// Package server implements the single-threaded multiplexing echo server.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/eapache/queue"
	"github.com/sirupsen/logrus"

	"github.com/momentics/hioload-echo/adapters"
	"github.com/momentics/hioload-echo/api"
	"github.com/momentics/hioload-echo/pool"
	"github.com/momentics/hioload-echo/transport"
)

// Config holds all server-side configuration parameters.
type Config struct {
	Port           int            // TCP port to bind, (0, 65535]
	ReadBufferSize int            // per-read buffer size, bytes
	SnowflakeNode  int64          // node id for connection id generation
	Logger         *logrus.Logger // structured logger; nil selects the standard one
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:           9000,
		ReadBufferSize: 1024,
		SnowflakeNode:  0,
		Logger:         logrus.StandardLogger(),
	}
}

// Server drives the accept/echo/cleanup cycle over one readiness poller.
// Exactly one goroutine, the one inside Run, touches the endpoint and
// the client set; the only cross-goroutine entry point is Shutdown.
type Server struct {
	cfg     *Config
	log     *logrus.Logger
	control *adapters.ControlAdapter
	bufPool *pool.BytePool
	ep      *transport.Endpoint
	poller  api.Poller
	idNode  *snowflake.Node

	connMu  sync.RWMutex // guards clients against debug-probe readers
	clients map[int]*clientConn
	events  *queue.Queue // readiness events drained each iteration

	started  atomic.Bool
	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// clientConn is the tracked state of one accepted descriptor.
type clientConn struct {
	fd       int
	id       snowflake.ID
	remote   string
	since    time.Time
	bytesIn  int64
	bytesOut int64
}
