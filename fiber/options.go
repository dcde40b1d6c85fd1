package fiber

import (
	"log"
	"time"
)

type OnErrorFunc func(r *Reconciler, err error)

// OnCommitFunc runs after a pass became the current tree.
type OnCommitFunc func(r *Reconciler, root *Fiber)

type Option func(*Reconciler)

// WithLogger sets the logger for pass lifecycle messages. Nil disables logging.
func WithLogger(l *log.Logger) Option {
	return func(r *Reconciler) {
		r.logger = l
	}
}

// WithOnError receives errors from work loops started through Schedule.
func WithOnError(fn OnErrorFunc) Option {
	return func(r *Reconciler) {
		r.onError = fn
	}
}

// WithYieldThreshold sets the remaining time under which WorkLoop yields.
func WithYieldThreshold(d time.Duration) Option {
	return func(r *Reconciler) {
		if d < 0 {
			d = 0
		}
		r.yieldThreshold = d
	}
}

func WithOnCommit(fn OnCommitFunc) Option {
	return func(r *Reconciler) {
		r.onCommit = fn
	}
}
