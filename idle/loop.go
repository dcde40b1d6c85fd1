// Package idle is a host loop that serves idle callbacks the way a browser
// does: once per frame, each callback gets a deadline derived from the frame
// budget, and anything posted from other goroutines runs on the loop first.
package idle

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/delaneyj/tinyfiber/fiber"
)

var (
	// ErrLoopRunning is returned when Run is called on a loop that is running.
	ErrLoopRunning = errors.New("idle: loop is already running")

	// ErrLoopStopped is returned by Post and RequestIdleCallback after Run
	// has returned.
	ErrLoopStopped = errors.New("idle: loop has stopped")
)

const (
	DefaultBudget   = 5 * time.Millisecond
	DefaultInterval = 16 * time.Millisecond
)

type Option func(*Loop)

// WithBudget sets how long idle callbacks may run per frame.
func WithBudget(d time.Duration) Option {
	return func(l *Loop) { l.budget = d }
}

// WithInterval sets the frame period.
func WithInterval(d time.Duration) Option {
	return func(l *Loop) {
		if d > 0 {
			l.interval = d
		}
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Loop) { l.now = now }
}

type Loop struct {
	budget   time.Duration
	interval time.Duration
	now      func() time.Time

	mu        sync.Mutex
	tasks     []func()
	callbacks []func(fiber.Deadline)
	stopped   bool

	wake    chan struct{}
	running atomic.Bool
	frames  atomic.Uint64
}

func New(opts ...Option) *Loop {
	l := &Loop{
		budget:   DefaultBudget,
		interval: DefaultInterval,
		now:      time.Now,
		wake:     make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Post queues fn to run on the loop before the next round of idle callbacks.
// It is safe to call from any goroutine.
func (l *Loop) Post(fn func()) error {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return ErrLoopStopped
	}
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return nil
}

// RequestIdleCallback queues cb for the next frame. Callbacks requested while
// a frame runs wait for the following one.
func (l *Loop) RequestIdleCallback(cb func(fiber.Deadline)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return
	}
	l.callbacks = append(l.callbacks, cb)
}

func (l *Loop) Frames() uint64 { return l.frames.Load() }

// Pending reports queued tasks and idle callbacks.
func (l *Loop) Pending() (tasks, callbacks int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks), len(l.callbacks)
}

// RunFrame runs one frame on the calling goroutine: posted tasks first, then
// every idle callback queued so far. Do not call it while Run is serving.
func (l *Loop) RunFrame() {
	start := l.now()
	l.frames.Add(1)

	l.mu.Lock()
	tasks, callbacks := l.tasks, l.callbacks
	l.tasks, l.callbacks = nil, nil
	l.mu.Unlock()

	for _, task := range tasks {
		task()
	}

	d := &deadline{end: start.Add(l.budget), now: l.now}
	for _, cb := range callbacks {
		cb(d)
	}
}

// Run serves frames until ctx is done. It returns ctx's error.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	defer l.running.Store(false)
	defer func() {
		l.mu.Lock()
		l.stopped = true
		l.tasks, l.callbacks = nil, nil
		l.mu.Unlock()
	}()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		case <-l.wake:
		}
		l.RunFrame()
	}
}

type deadline struct {
	end time.Time
	now func() time.Time
}

func (d *deadline) TimeRemaining() time.Duration {
	if left := d.end.Sub(d.now()); left > 0 {
		return left
	}
	return 0
}
