// File: client/client.go
// Package client provides a minimal blocking TCP client for the echo server.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The client is deliberately plain: it dials, writes raw bytes, reads raw
// bytes and supports half-closing the write side so peers can observe
// end-of-stream. Tests and examples drive the server through it.

package client

import (
	"fmt"
	"io"
	"net"
	"time"
)

// Config holds dial and I/O parameters.
type Config struct {
	Addr        string        // host:port of the echo server
	DialTimeout time.Duration // 0 disables the dial deadline
	IOTimeout   time.Duration // per-operation read/write deadline, 0 disables
}

// Client wraps one TCP connection to an echo server.
type Client struct {
	cfg  Config
	conn *net.TCPConn
}

// Dial connects to the configured address.
func Dial(cfg Config) (*Client, error) {
	conn, err := net.DialTimeout("tcp", cfg.Addr, cfg.DialTimeout)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.Addr, err)
	}
	return &Client{cfg: cfg, conn: conn.(*net.TCPConn)}, nil
}

// Send writes p completely.
func (c *Client) Send(p []byte) error {
	if err := c.deadline(); err != nil {
		return err
	}
	if _, err := c.conn.Write(p); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	return nil
}

// Recv reads into p and returns the number of bytes read.
func (c *Client) Recv(p []byte) (int, error) {
	if err := c.deadline(); err != nil {
		return 0, err
	}
	return c.conn.Read(p)
}

// RoundTrip sends p and reads back exactly len(p) bytes.
func (c *Client) RoundTrip(p []byte) ([]byte, error) {
	if err := c.Send(p); err != nil {
		return nil, err
	}
	out := make([]byte, len(p))
	if err := c.deadline(); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(c.conn, out); err != nil {
		return nil, fmt.Errorf("recv: %w", err)
	}
	return out, nil
}

// CloseWrite half-closes the connection so the server sees end-of-stream
// while the read side stays open.
func (c *Client) CloseWrite() error {
	return c.conn.CloseWrite()
}

// Close tears the connection down; idempotent enough for test teardown.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) deadline() error {
	if c.cfg.IOTimeout <= 0 {
		return nil
	}
	return c.conn.SetDeadline(time.Now().Add(c.cfg.IOTimeout))
}
