package dispatch

import (
	"context"
	"sync"
	"time"
)

// DefaultTick is the polling interval of a Scheduler, capping a timer at 500
// promotions per second.
const DefaultTick = 2 * time.Millisecond

// Flow tells DeployDynamic whether to run a task again.
type Flow struct {
	again bool
	delay time.Duration
}

// Continue schedules another run after d.
func Continue(d time.Duration) Flow {
	return Flow{again: true, delay: d}
}

// Break stops a dynamic task.
var Break = Flow{}

type delayedTask struct {
	task Task
	due  time.Time
}

// Scheduler holds delayed tasks and, while Run is active, moves each one
// into its Pool once its delay has elapsed.
type Scheduler struct {
	pool *Pool
	tick time.Duration
	now  func() time.Time

	mu    sync.Mutex
	tasks []delayedTask

	stopOnce sync.Once
	stop     chan struct{}
}

// NewScheduler returns a scheduler feeding pool. tick <= 0 uses DefaultTick.
func NewScheduler(pool *Pool, tick time.Duration) *Scheduler {
	if tick <= 0 {
		tick = DefaultTick
	}
	return &Scheduler{
		pool: pool,
		tick: tick,
		now:  time.Now,
		stop: make(chan struct{}),
	}
}

// Deploy runs fn on the pool after delay.
func (s *Scheduler) Deploy(fn func(), delay time.Duration) {
	s.deploy(func() error {
		fn()
		return nil
	}, delay)
}

// DeployTask runs t on the pool after delay.
func (s *Scheduler) DeployTask(t Task, delay time.Duration) {
	s.deploy(t, delay)
}

func (s *Scheduler) deploy(t Task, delay time.Duration) {
	s.mu.Lock()
	s.tasks = append(s.tasks, delayedTask{task: t, due: s.now().Add(delay)})
	s.mu.Unlock()
}

// DeployRepeat runs fn count times, interval apart, starting one interval
// from now. fn receives the number of runs left including the current one,
// so the last run sees 1.
func (s *Scheduler) DeployRepeat(count int, interval time.Duration, fn func(remaining int)) {
	if count <= 0 {
		return
	}
	s.Deploy(func() {
		fn(count)
		if count > 1 {
			s.DeployRepeat(count-1, interval, fn)
		}
	}, interval)
}

// DeployDynamic runs fn after delay, and again after whatever delay it
// returns with Continue, until it returns Break.
func (s *Scheduler) DeployDynamic(fn func() Flow, delay time.Duration) {
	s.Deploy(func() {
		if f := fn(); f.again {
			s.DeployDynamic(fn, f.delay)
		}
	}, delay)
}

// Pending returns the number of tasks not yet promoted to the pool.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Run polls every tick until ctx is done or Shutdown is called. It returns
// ctx.Err() in the first case and nil in the second.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stop:
			return nil
		case <-ticker.C:
			s.promote(s.now())
		}
	}
}

// Shutdown stops Run. Tasks still waiting are dropped.
func (s *Scheduler) Shutdown() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// promote submits every task due at now, keeping the rest in order. Returns
// the number submitted.
func (s *Scheduler) promote(now time.Time) int {
	s.mu.Lock()
	var ready []Task
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !now.Before(t.due) {
			ready = append(ready, t.task)
		} else {
			kept = append(kept, t)
		}
	}
	clear(s.tasks[len(kept):])
	s.tasks = kept
	s.mu.Unlock()

	n := 0
	for _, t := range ready {
		if s.pool.Submit(t) == nil {
			n++
		}
	}
	return n
}
