//go:build linux || darwin

package reactor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-echo/api"
)

func newTestPipe(t *testing.T) (r, w int) {
	t.Helper()
	var p [2]int
	require.NoError(t, unix.Pipe(p[:]))
	t.Cleanup(func() {
		unix.Close(p[0])
		unix.Close(p[1])
	})
	return p[0], p[1]
}

func TestWaitReportsReadableFd(t *testing.T) {
	p, err := NewSelectPoller()
	require.NoError(t, err)
	defer p.Close()

	r, w := newTestPipe(t)
	require.NoError(t, p.Add(r))

	go func() {
		time.Sleep(50 * time.Millisecond)
		unix.Write(w, []byte("x"))
	}()

	ready, err := p.Wait()
	require.NoError(t, err)
	assert.Equal(t, []int{r}, ready)
}

func TestWaitReturnsAscendingOrder(t *testing.T) {
	p, err := NewSelectPoller()
	require.NoError(t, err)
	defer p.Close()

	r1, w1 := newTestPipe(t)
	r2, w2 := newTestPipe(t)
	require.NoError(t, p.Add(r2))
	require.NoError(t, p.Add(r1))

	_, err = unix.Write(w1, []byte("a"))
	require.NoError(t, err)
	_, err = unix.Write(w2, []byte("b"))
	require.NoError(t, err)

	ready, err := p.Wait()
	require.NoError(t, err)
	require.Len(t, ready, 2)
	assert.Less(t, ready[0], ready[1])
}

func TestWakeupInterruptsWait(t *testing.T) {
	p, err := NewSelectPoller()
	require.NoError(t, err)
	defer p.Close()

	go func() {
		time.Sleep(50 * time.Millisecond)
		p.Wakeup()
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		ready, werr := p.Wait()
		assert.NoError(t, werr)
		assert.Empty(t, ready)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait was not interrupted by Wakeup")
	}
}

func TestRemoveDropsInterest(t *testing.T) {
	p, err := NewSelectPoller()
	require.NoError(t, err)
	defer p.Close()

	r1, w1 := newTestPipe(t)
	r2, w2 := newTestPipe(t)
	require.NoError(t, p.Add(r1))
	require.NoError(t, p.Add(r2))
	require.NoError(t, p.Remove(r1))

	_, err = unix.Write(w1, []byte("a"))
	require.NoError(t, err)
	_, err = unix.Write(w2, []byte("b"))
	require.NoError(t, err)

	ready, err := p.Wait()
	require.NoError(t, err)
	assert.Equal(t, []int{r2}, ready)
}

func TestAddRejectsOutOfRangeFd(t *testing.T) {
	p, err := NewSelectPoller()
	require.NoError(t, err)
	defer p.Close()

	err = p.Add(fdSetSize)
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrResource)

	err = p.Add(-1)
	require.Error(t, err)
}

func TestWaitOnClosedPoller(t *testing.T) {
	p, err := NewSelectPoller()
	require.NoError(t, err)
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	_, err = p.Wait()
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrInvalidState)
}

func TestWaitWritableOnIdlePipe(t *testing.T) {
	_, w := newTestPipe(t)
	// An empty pipe always has write capacity.
	require.NoError(t, WaitWritable(w))
}
