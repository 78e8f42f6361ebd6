package client

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startEchoListener runs a plain goroutine-per-connection echo endpoint
// so the client can be tested without the event-loop server.
func startEchoListener(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(c net.Conn) {
				defer c.Close()
				io.Copy(c, c)
			}(conn)
		}
	}()
	return ln.Addr().String()
}

func TestRoundTrip(t *testing.T) {
	addr := startEchoListener(t)
	cl, err := Dial(Config{Addr: addr, IOTimeout: 2 * time.Second})
	require.NoError(t, err)
	defer cl.Close()

	reply, err := cl.RoundTrip([]byte("ping"))
	require.NoError(t, err)
	assert.Equal(t, []byte("ping"), reply)
}

func TestCloseWriteSignalsEndOfStream(t *testing.T) {
	addr := startEchoListener(t)
	cl, err := Dial(Config{Addr: addr, IOTimeout: 2 * time.Second})
	require.NoError(t, err)
	defer cl.Close()

	require.NoError(t, cl.Send([]byte("bye")))
	require.NoError(t, cl.CloseWrite())

	buf := make([]byte, 8)
	n, err := cl.Recv(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte("bye"), buf[:n])

	// Peer drains and closes; the read side eventually reports EOF.
	_, err = cl.Recv(buf)
	assert.ErrorIs(t, err, io.EOF)
}

func TestDialFailure(t *testing.T) {
	_, err := Dial(Config{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond})
	assert.Error(t, err)
}
