package fiber

import (
	"math"
	"time"
)

// Deadline answers how much time is left before the current host callback
// should give control back.
type Deadline interface {
	TimeRemaining() time.Duration
}

type DeadlineFunc func() time.Duration

func (f DeadlineFunc) TimeRemaining() time.Duration { return f() }

var (
	// Unlimited never asks the work loop to yield.
	Unlimited Deadline = DeadlineFunc(func() time.Duration { return math.MaxInt64 })
	// Exhausted makes the work loop yield after every unit.
	Exhausted Deadline = DeadlineFunc(func() time.Duration { return 0 })
)

// IdleScheduler is the host side of cooperative scheduling. Each request is
// served once; callers that want to keep running request again.
type IdleScheduler interface {
	RequestIdleCallback(cb func(Deadline))
}
