// Package dispatch runs background work for a caribou application: a
// fixed-size worker Pool fed from a shared FIFO queue, and a Scheduler that
// promotes delayed tasks into the pool once they are due.
//
// Nothing in the widget tree is safe to touch from a task. Hand results back
// to the UI goroutine with caribou.Scene.Post.
package dispatch

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ErrClosed is returned by Submit after Shutdown.
var ErrClosed = errors.New("dispatch: pool closed")

// Task is a unit of background work. A returned error is collected and
// reported by Shutdown; it does not stop the worker.
type Task func() error

// Pool runs tasks on a fixed number of workers. Tasks start in submission
// order.
type Pool struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []Task
	closed bool
	errs   []error

	workers int
	g       errgroup.Group
}

// NewPool starts n workers. n <= 0 uses one worker per CPU.
func NewPool(n int) *Pool {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	p := &Pool{workers: n}
	p.cond = sync.NewCond(&p.mu)
	for range n {
		p.g.Go(p.work)
	}
	return p
}

// Workers returns the number of workers.
func (p *Pool) Workers() int {
	return p.workers
}

// Submit queues t. Safe to call from any goroutine, including from a task.
func (p *Pool) Submit(t Task) error {
	if t == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	p.queue = append(p.queue, t)
	p.cond.Signal()
	return nil
}

// Go queues fn, which cannot fail. It is a shorthand for Submit.
func (p *Pool) Go(fn func()) error {
	return p.Submit(func() error {
		fn()
		return nil
	})
}

// Pending returns the number of queued tasks no worker has picked up yet.
func (p *Pool) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}

// Shutdown stops accepting tasks, waits for the queue to drain and every
// worker to exit, and returns the errors collected from tasks.
func (p *Pool) Shutdown() error {
	p.mu.Lock()
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()

	_ = p.g.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	return errors.Join(p.errs...)
}

func (p *Pool) work() error {
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.queue) == 0 {
			p.mu.Unlock()
			return nil
		}
		t := p.queue[0]
		p.queue[0] = nil
		p.queue = p.queue[1:]
		if len(p.queue) > 0 {
			p.cond.Signal()
		}
		p.mu.Unlock()

		if err := run(t); err != nil {
			p.mu.Lock()
			p.errs = append(p.errs, err)
			p.mu.Unlock()
		}
	}
}

// run calls t, turning a panic into an error so one bad task cannot take a
// worker down.
func run(t Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("dispatch: task panicked: %v", r)
		}
	}()
	return t()
}
