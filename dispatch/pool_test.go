package dispatch

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolRunsAllTasks(t *testing.T) {
	p := NewPool(4)
	var n atomic.Int64
	for range 100 {
		require.NoError(t, p.Go(func() { n.Add(1) }))
	}
	require.NoError(t, p.Shutdown())
	assert.EqualValues(t, 100, n.Load())
}

func TestPoolSingleWorkerKeepsOrder(t *testing.T) {
	p := NewPool(1)
	var (
		mu  sync.Mutex
		got []int
	)
	for i := range 10 {
		require.NoError(t, p.Go(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		}))
	}
	require.NoError(t, p.Shutdown())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
}

func TestPoolSubmitAfterShutdown(t *testing.T) {
	p := NewPool(2)
	require.NoError(t, p.Shutdown())
	assert.ErrorIs(t, p.Go(func() {}), ErrClosed)
}

func TestPoolDefaultWorkers(t *testing.T) {
	p := NewPool(0)
	defer p.Shutdown()
	assert.Positive(t, p.Workers())
}

func TestPoolCollectsErrors(t *testing.T) {
	p := NewPool(2)
	boom := errors.New("boom")
	require.NoError(t, p.Submit(func() error { return boom }))
	require.NoError(t, p.Submit(func() error { return nil }))
	err := p.Shutdown()
	assert.ErrorIs(t, err, boom)
}

func TestPoolRecoversPanics(t *testing.T) {
	p := NewPool(1)
	var ran atomic.Bool
	require.NoError(t, p.Go(func() { panic("bad task") }))
	require.NoError(t, p.Go(func() { ran.Store(true) }))
	err := p.Shutdown()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad task")
	assert.True(t, ran.Load(), "worker should survive a panicking task")
}

func TestPoolSubmitFromTask(t *testing.T) {
	p := NewPool(2)
	done := make(chan struct{})
	require.NoError(t, p.Go(func() {
		_ = p.Go(func() { close(done) })
	}))
	<-done
	require.NoError(t, p.Shutdown())
}

func TestPoolSubmitNil(t *testing.T) {
	p := NewPool(1)
	assert.NoError(t, p.Submit(nil))
	assert.Zero(t, p.Pending())
	require.NoError(t, p.Shutdown())
}
