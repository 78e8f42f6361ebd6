// File: server/run.go
// Package server implements the readiness-poll/accept/read/write cycle.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/momentics/hioload-echo/api"
	"github.com/momentics/hioload-echo/reactor"
	"github.com/momentics/hioload-echo/transport"
)

// Run starts listening and drives the multiplexing loop until Shutdown
// is called or a fatal accept error occurs. A second invocation on the
// same instance fails with api.ErrInvalidState and has no other effect.
//
// Per iteration: wait for readiness over the listener plus every
// tracked client, drain every ready client in ascending descriptor
// order, then accept at most one pending connection. Existing clients
// are therefore never starved by a connect flood.
func (s *Server) Run() error {
	if !s.started.CompareAndSwap(false, true) {
		return fmt.Errorf("server already started: %w", api.ErrInvalidState)
	}
	defer close(s.done)
	defer s.teardown()

	if err := s.ep.Listen(); err != nil {
		return err
	}
	if err := s.poller.Add(s.ep.Fd()); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"port": s.ep.Port(),
		"fd":   s.ep.Fd(),
	}).Info("echo server listening")

	for {
		select {
		case <-s.quit:
			return nil
		default:
		}

		ready, err := s.poller.Wait()
		if err != nil {
			return err
		}

		// Ready clients are queued first; the listener is handled only
		// after the queue is drained.
		listenerReady := false
		for _, fd := range ready {
			if fd == s.ep.Fd() {
				listenerReady = true
				continue
			}
			s.events.Add(fd)
		}
		for s.events.Length() > 0 {
			fd := s.events.Remove().(int)
			s.handleReadable(fd)
		}
		if listenerReady {
			if err := s.acceptOne(); err != nil {
				return err
			}
		}
	}
}

// handleReadable reads once from a ready client and echoes the bytes
// back verbatim. End-of-stream and hard read errors drop the client;
// would-block means a spurious wakeup and leaves it tracked.
func (s *Server) handleReadable(fd int) {
	s.connMu.RLock()
	c, ok := s.clients[fd]
	s.connMu.RUnlock()
	if !ok {
		// Dropped earlier in this same iteration.
		return
	}
	buf := s.bufPool.GetBuffer()
	defer s.bufPool.PutBuffer(buf)

	n, err := transport.Read(fd, buf)
	switch {
	case err != nil && transport.IsWouldBlock(err):
		return
	case err != nil || n == 0:
		s.dropClient(c, err)
	default:
		c.bytesIn += int64(n)
		s.control.AddMetric("bytes.in", int64(n))
		if werr := s.echoBack(fd, buf[:n]); werr != nil {
			s.dropClient(c, werr)
			return
		}
		c.bytesOut += int64(n)
		s.control.AddMetric("bytes.out", int64(n))
		s.log.WithFields(logrus.Fields{
			"conn_id": c.id.String(),
			"bytes":   n,
		}).Debug("echoed payload")
	}
}

// echoBack writes p back to the client completely. On would-block it
// waits for writability of that single descriptor and resumes, so a
// payload is never truncated; a hard error is returned to the caller,
// which drops the client. Silent write loss is not an option here.
func (s *Server) echoBack(fd int, p []byte) error {
	for len(p) > 0 {
		n, err := transport.Write(fd, p)
		if err != nil {
			if transport.IsWouldBlock(err) {
				if werr := reactor.WaitWritable(fd); werr != nil {
					return werr
				}
				continue
			}
			return err
		}
		p = p[n:]
	}
	return nil
}

// dropClient performs the full shutdown+close sequence and untracks the
// descriptor. Subsequent iterations never see it again.
func (s *Server) dropClient(c *clientConn, cause error) {
	_ = s.poller.Remove(c.fd)
	_ = transport.Shutdown(c.fd)
	_ = transport.CloseFd(c.fd)
	s.connMu.Lock()
	delete(s.clients, c.fd)
	active := int64(len(s.clients))
	s.connMu.Unlock()
	s.control.AddMetric("conns.closed", 1)
	s.control.SetMetric("conns.active", active)
	entry := s.log.WithFields(logrus.Fields{
		"conn_id": c.id.String(),
		"remote":  c.remote,
		"alive":   time.Since(c.since).String(),
	})
	if cause != nil {
		entry.WithError(cause).Info("client dropped on read error")
	} else {
		entry.Info("client disconnected")
	}
}

// acceptOne admits at most one pending connection. Transient accept
// failures (resource pressure, aborted handshakes) are logged and the
// loop continues; anything else is fatal for the whole server.
func (s *Server) acceptOne() error {
	fd, remote, err := s.ep.Accept()
	if err != nil {
		if transport.IsTransientAcceptError(err) {
			s.control.AddMetric("accept.transient_errors", 1)
			s.log.WithError(err).Warn("transient accept failure")
			return nil
		}
		return fmt.Errorf("accept: %w: %w", api.ErrAccept, err)
	}
	if err := s.poller.Add(fd); err != nil {
		// Interest set full; refuse the connection rather than die.
		_ = transport.CloseFd(fd)
		s.log.WithError(err).WithField("remote", remote).Warn("connection refused, poller capacity")
		return nil
	}
	c := &clientConn{
		fd:     fd,
		id:     s.idNode.Generate(),
		remote: remote,
		since:  time.Now(),
	}
	s.connMu.Lock()
	s.clients[fd] = c
	active := int64(len(s.clients))
	s.connMu.Unlock()
	s.control.AddMetric("conns.accepted", 1)
	s.control.SetMetric("conns.active", active)
	s.log.WithFields(logrus.Fields{
		"conn_id": c.id.String(),
		"remote":  remote,
		"fd":      fd,
	}).Info("client accepted")
	return nil
}

// teardown closes every tracked client, the endpoint and the poller.
func (s *Server) teardown() {
	s.connMu.Lock()
	for fd, c := range s.clients {
		_ = s.poller.Remove(fd)
		_ = transport.Shutdown(fd)
		_ = transport.CloseFd(fd)
		delete(s.clients, fd)
		s.log.WithField("conn_id", c.id.String()).Debug("client closed on teardown")
	}
	s.connMu.Unlock()
	s.control.SetMetric("conns.active", int64(0))
	_ = s.poller.Close()
	_ = s.ep.Close()
	s.log.Info("echo server stopped")
}

// trackedFds snapshots the tracked descriptor set for the debug probe.
func (s *Server) trackedFds() any {
	s.connMu.RLock()
	defer s.connMu.RUnlock()
	fds := make([]int, 0, len(s.clients))
	for fd := range s.clients {
		fds = append(fds, fd)
	}
	return fds
}
