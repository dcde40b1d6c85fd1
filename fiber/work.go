package fiber

import (
	"fmt"
	"log"
	"time"
)

type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseCommitting
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseCommitting:
		return "committing"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// Status is the outcome of a single Step.
type Status uint8

const (
	StatusIdle Status = iota
	StatusContinuing
	StatusCommitted
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusContinuing:
		return "continuing"
	case StatusCommitted:
		return "committed"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

const DefaultYieldThreshold = time.Millisecond

// Reconciler owns the render state of one root. At most one pass is in
// flight; a new Render replaces it. A Reconciler is not safe for concurrent
// use, hosts serialize Render and the work loop on one goroutine.
type Reconciler struct {
	target Target

	nextUnitOfWork *Fiber
	wipRoot        *Fiber
	currentRoot    *Fiber
	deletions      []*Fiber
	phase          Phase
	generation     uint64 // committed passes

	yieldThreshold time.Duration
	logger         *log.Logger
	onError        OnErrorFunc
	onCommit       OnCommitFunc
}

func NewReconciler(target Target, opts ...Option) *Reconciler {
	r := &Reconciler{
		target:         target,
		yieldThreshold: DefaultYieldThreshold,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Reconciler) Phase() Phase { return r.phase }

// Current is the root of the last committed tree, nil before the first commit.
func (r *Reconciler) Current() *Fiber { return r.currentRoot }

// WorkInProgress is the root of the pass being built, nil when idle.
func (r *Reconciler) WorkInProgress() *Fiber { return r.wipRoot }

// Render starts a new pass that renders el into container. A nil container is
// ignored. A pass still in flight is discarded.
func (r *Reconciler) Render(el *Element, container Handle) {
	if container == nil {
		return
	}
	if r.wipRoot != nil {
		r.logf("discarding in-flight pass %d", r.wipRoot.generation)
	}

	var alternate *Fiber
	if r.currentRoot != nil && sameValue(r.currentRoot.handle, container) {
		alternate = r.currentRoot
	}

	r.wipRoot = &Fiber{
		kind:       KindRoot,
		handle:     container,
		props:      Props{ChildrenKey: []*Element{el}},
		alternate:  alternate,
		generation: r.generation + 1,
	}
	r.deletions = nil
	r.nextUnitOfWork = r.wipRoot
	r.phase = PhaseRunning
	r.logf("pass %d started", r.wipRoot.generation)
}

// Step performs one unit of work. When that unit completes the tree walk the
// pass is committed before Step returns.
func (r *Reconciler) Step() (status Status, err error) {
	if r.wipRoot == nil {
		return StatusIdle, nil
	}

	defer func() {
		if p := recover(); p != nil {
			r.abandon(fmt.Errorf("panic: %v", p))
			panic(p)
		}
	}()

	if r.nextUnitOfWork != nil {
		next, err := r.performUnitOfWork(r.nextUnitOfWork)
		if err != nil {
			r.abandon(err)
			return StatusIdle, fmt.Errorf("%w: %w", ErrPassAbandoned, err)
		}
		r.nextUnitOfWork = next
	}
	if r.nextUnitOfWork != nil {
		return StatusContinuing, nil
	}

	if err := r.commitRoot(); err != nil {
		r.abandon(err)
		return StatusIdle, fmt.Errorf("%w: %w", ErrPassAbandoned, err)
	}
	return StatusCommitted, nil
}

// WorkLoop runs units until the pass commits or d reports less time than the
// yield threshold. At least one unit runs per call.
func (r *Reconciler) WorkLoop(d Deadline) error {
	for {
		status, err := r.Step()
		if err != nil {
			return err
		}
		if status != StatusContinuing {
			return nil
		}
		if d.TimeRemaining() < r.yieldThreshold {
			return nil
		}
	}
}

// Flush drives the pending pass to completion without yielding.
func (r *Reconciler) Flush() error {
	return r.WorkLoop(Unlimited)
}

// Schedule hands the work loop to host. The callback requests itself again
// after every invocation, so it keeps running for as long as host does.
func (r *Reconciler) Schedule(host IdleScheduler) {
	var loop func(Deadline)
	loop = func(d Deadline) {
		if err := r.WorkLoop(d); err != nil && r.onError != nil {
			r.onError(r, err)
		}
		host.RequestIdleCallback(loop)
	}
	host.RequestIdleCallback(loop)
}

func (r *Reconciler) performUnitOfWork(f *Fiber) (*Fiber, error) {
	var err error
	switch f.kind {
	case KindFunction:
		err = r.updateFunctionComponent(f)
	default:
		err = r.updateHostComponent(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f, err)
	}

	if f.child != nil {
		return f.child, nil
	}
	for next := f; next != nil; next = next.parent {
		if next.sibling != nil {
			return next.sibling, nil
		}
	}
	return nil, nil
}

func (r *Reconciler) updateFunctionComponent(f *Fiber) error {
	return r.reconcileChildren(f, []*Element{f.component(f.props)})
}

// updateHostComponent only reconciles. The handle of a placed host fiber is
// created by the commit phase so the target is untouched while building.
func (r *Reconciler) updateHostComponent(f *Fiber) error {
	return r.reconcileChildren(f, f.props.Children())
}

func (r *Reconciler) abandon(err error) {
	if r.wipRoot != nil {
		r.logf("pass %d abandoned: %v", r.wipRoot.generation, err)
	}
	r.wipRoot = nil
	r.nextUnitOfWork = nil
	r.deletions = nil
	r.phase = PhaseIdle
}

func (r *Reconciler) logf(format string, args ...any) {
	if r.logger != nil {
		r.logger.Printf(format, args...)
	}
}
