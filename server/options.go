// File: server/options.go
// Package server defines functional options for the Server facade.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import "github.com/sirupsen/logrus"

// Option customizes server configuration before wiring.
type Option func(*Config)

// WithPort overrides the listening port.
func WithPort(port int) Option {
	return func(c *Config) {
		c.Port = port
	}
}

// WithReadBufferSize overrides the per-read buffer size.
func WithReadBufferSize(n int) Option {
	return func(c *Config) {
		c.ReadBufferSize = n
	}
}

// WithLogger injects a structured logger.
func WithLogger(log *logrus.Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}

// WithSnowflakeNode sets the node id used for connection ids.
func WithSnowflakeNode(node int64) Option {
	return func(c *Config) {
		c.SnowflakeNode = node
	}
}
