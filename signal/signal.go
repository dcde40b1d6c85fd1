// Package signal holds application state for hosts of a reconciler. Cells
// notify their watchers synchronously when their value changes; a watcher
// typically requests a new render pass.
package signal

import "sync"

type System struct {
	mu            *sync.Mutex
	currentUpdate uint32
}

func NewSystem() *System {
	return &System{mu: &sync.Mutex{}}
}

// Updates counts the changes the system has propagated.
func (sys *System) Updates() uint32 {
	sys.mu.Lock()
	defer sys.mu.Unlock()
	return sys.currentUpdate
}

type subscriber interface {
	notify(update uint32)
}

type Cell[T comparable] struct {
	sys  *System
	v    T
	subs []subscriber
}

func New[T comparable](sys *System, value T) *Cell[T] {
	return &Cell[T]{sys: sys, v: value}
}

func (c *Cell[T]) Value() T {
	c.sys.mu.Lock()
	defer c.sys.mu.Unlock()
	return c.v
}

// Set stores value and, if it differs, runs every watcher before returning.
func (c *Cell[T]) Set(value T) {
	c.sys.mu.Lock()
	if c.v == value {
		c.sys.mu.Unlock()
		return
	}
	c.v = value
	c.sys.currentUpdate++
	update := c.sys.currentUpdate
	subs := make([]subscriber, len(c.subs))
	copy(subs, c.subs)
	c.sys.mu.Unlock()

	for _, sub := range subs {
		sub.notify(update)
	}
}

// Update sets the result of fn applied to the current value.
func (c *Cell[T]) Update(fn func(T) T) {
	c.Set(fn(c.Value()))
}

func (c *Cell[T]) addSub(sub subscriber) {
	c.sys.mu.Lock()
	defer c.sys.mu.Unlock()
	c.subs = append(c.subs, sub)
}

func (c *Cell[T]) removeSub(sub subscriber) {
	c.sys.mu.Lock()
	defer c.sys.mu.Unlock()
	for i, s := range c.subs {
		if s == sub {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			return
		}
	}
}

type watcher[T comparable] struct {
	cell       *Cell[T]
	fn         func(T) error
	onError    func(error)
	lastUpdate uint32
}

// notify runs the watcher once per update. A notification older than the
// last one served is dropped, since run always reads the current value.
func (w *watcher[T]) notify(update uint32) {
	mu := w.cell.sys.mu
	mu.Lock()
	if update <= w.lastUpdate {
		mu.Unlock()
		return
	}
	w.lastUpdate = update
	mu.Unlock()
	w.run()
}

func (w *watcher[T]) run() {
	if err := w.fn(w.cell.Value()); err != nil && w.onError != nil {
		w.onError(err)
	}
}

// Watch calls fn with the current value now and after every change. Errors
// from fn go to onError when it is not nil.
//
// fn runs on the goroutine that called Set. Concurrent Sets may run fn
// concurrently, so a watcher that drives a Reconciler should only see Sets
// from the goroutine that owns it, or hand the render to that goroutine
// (for example with idle.Loop.Post).
func Watch[T comparable](cell *Cell[T], fn func(T) error, onError func(error)) (stop func()) {
	w := &watcher[T]{cell: cell, fn: fn, onError: onError}
	cell.addSub(w)
	w.run()
	return func() {
		cell.removeSub(w)
	}
}
