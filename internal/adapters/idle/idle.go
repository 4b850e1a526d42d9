// Package idle schedules deferred work for moments when the loader is not busy.
package idle

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	// DefaultPollInterval is how often the busy probe is consulted.
	DefaultPollInterval = 50 * time.Millisecond
	// DefaultTimeout is the longest a task waits for an idle moment before it runs anyway.
	DefaultTimeout = 2 * time.Second
)

// BusyFunc reports whether the host is currently busy.
type BusyFunc func() bool

// Scheduler implements ports.IdleScheduler by polling a busy probe.
// A task runs on the first poll that finds the host idle, or once its timeout elapses.
type Scheduler struct {
	clock    clockwork.Clock
	busy     BusyFunc
	interval time.Duration
	timeout  time.Duration
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock sets the clock used for polling and timeouts.
func WithClock(c clockwork.Clock) Option {
	return func(s *Scheduler) {
		s.clock = c
	}
}

// WithPollInterval sets how often the busy probe is consulted.
func WithPollInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithTimeout sets the longest a task waits for an idle moment.
func WithTimeout(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New creates a Scheduler. A nil probe treats the host as always idle.
func New(busy BusyFunc, opts ...Option) *Scheduler {
	if busy == nil {
		busy = func() bool { return false }
	}
	s := &Scheduler{
		clock:    clockwork.NewRealClock(),
		busy:     busy,
		interval: DefaultPollInterval,
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule queues task for the next idle moment. The returned function cancels the task
// if it has not started; it is safe to call more than once.
func (s *Scheduler) Schedule(task func()) (cancel func()) {
	done := make(chan struct{})
	var once sync.Once
	go s.wait(done, task)
	return func() {
		once.Do(func() { close(done) })
	}
}

func (s *Scheduler) wait(done <-chan struct{}, task func()) {
	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()
	deadline := s.clock.NewTimer(s.timeout)
	defer deadline.Stop()

	for {
		select {
		case <-done:
			return
		case <-deadline.Chan():
		case <-ticker.Chan():
			if s.busy() {
				continue
			}
		}

		select {
		case <-done:
		default:
			task()
		}
		return
	}
}
