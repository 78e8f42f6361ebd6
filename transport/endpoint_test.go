//go:build linux || darwin

package transport

import (
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-echo/api"
)

// freePort grabs an ephemeral port from the kernel and releases it so
// the endpoint under test can bind it.
func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestNewEndpointInvalidPort(t *testing.T) {
	tests := []struct {
		name string
		port int
	}{
		{"negative", -1},
		{"zero", 0},
		{"just above range", 65536},
		{"far above range", 70000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ep, err := NewEndpoint(tt.port)
			require.Error(t, err)
			assert.ErrorIs(t, err, api.ErrInvalidArgument)
			assert.Nil(t, ep)
		})
	}
}

func TestNewEndpointValid(t *testing.T) {
	port := freePort(t)
	ep, err := NewEndpoint(port)
	require.NoError(t, err)
	defer ep.Close()

	assert.GreaterOrEqual(t, ep.Fd(), 0)
	assert.Equal(t, port, ep.Port())
	assert.False(t, ep.Listening())
}

func TestListenTransitionsOnce(t *testing.T) {
	ep, err := NewEndpoint(freePort(t))
	require.NoError(t, err)
	defer ep.Close()

	require.NoError(t, ep.Listen())
	assert.True(t, ep.Listening())

	err = ep.Listen()
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrInvalidState)
}

func TestCloseIsIdempotent(t *testing.T) {
	ep, err := NewEndpoint(freePort(t))
	require.NoError(t, err)

	require.NoError(t, ep.Close())
	assert.Equal(t, -1, ep.Fd())
	require.NoError(t, ep.Close())

	err = ep.Listen()
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrInvalidState)
}

func TestAcceptWouldBlockOnIdleListener(t *testing.T) {
	ep, err := NewEndpoint(freePort(t))
	require.NoError(t, err)
	defer ep.Close()
	require.NoError(t, ep.Listen())

	_, _, err = ep.Accept()
	require.Error(t, err)
	assert.True(t, IsWouldBlock(err))
	assert.True(t, IsTransientAcceptError(err))
}

func TestAcceptReturnsNonblockingClient(t *testing.T) {
	port := freePort(t)
	ep, err := NewEndpoint(port)
	require.NoError(t, err)
	defer ep.Close()
	require.NoError(t, ep.Listen())

	conn, err := net.Dial("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(port)))
	require.NoError(t, err)
	defer conn.Close()

	var cfd int
	var remote string
	deadline := time.Now().Add(2 * time.Second)
	for {
		cfd, remote, err = ep.Accept()
		if err == nil {
			break
		}
		require.True(t, IsWouldBlock(err), "unexpected accept error: %v", err)
		require.True(t, time.Now().Before(deadline), "accept timed out")
		time.Sleep(5 * time.Millisecond)
	}
	defer CloseFd(cfd)

	assert.GreaterOrEqual(t, cfd, 0)
	assert.NotEmpty(t, remote)

	// Reading the fresh descriptor must not block.
	buf := make([]byte, 16)
	_, err = Read(cfd, buf)
	require.Error(t, err)
	assert.True(t, IsWouldBlock(err))
}

func TestIsTransientAcceptError(t *testing.T) {
	transient := []error{unix.EAGAIN, unix.EWOULDBLOCK, unix.EINTR, unix.ECONNABORTED, unix.EMFILE, unix.ENFILE}
	for _, e := range transient {
		assert.True(t, IsTransientAcceptError(e), "%v should be transient", e)
	}
	fatal := []error{unix.EBADF, unix.EINVAL, unix.ENOTSOCK}
	for _, e := range fatal {
		assert.False(t, IsTransientAcceptError(e), "%v should be fatal", e)
	}
}
