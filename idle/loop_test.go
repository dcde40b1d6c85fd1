package idle_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/delaneyj/tinyfiber/fiber"
	"github.com/delaneyj/tinyfiber/idle"
	"github.com/delaneyj/tinyfiber/memdom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestFrameRunsTasksBeforeCallbacks(t *testing.T) {
	l := idle.New()
	var order []string
	l.RequestIdleCallback(func(fiber.Deadline) { order = append(order, "idle") })
	require.NoError(t, l.Post(func() { order = append(order, "task") }))

	l.RunFrame()
	assert.Equal(t, []string{"task", "idle"}, order)
	assert.Equal(t, uint64(1), l.Frames())

	tasks, callbacks := l.Pending()
	assert.Zero(t, tasks)
	assert.Zero(t, callbacks)
}

func TestCallbacksRequestedDuringFrameWait(t *testing.T) {
	l := idle.New()
	calls := 0
	var cb func(fiber.Deadline)
	cb = func(fiber.Deadline) {
		calls++
		l.RequestIdleCallback(cb)
	}
	l.RequestIdleCallback(cb)

	l.RunFrame()
	l.RunFrame()
	assert.Equal(t, 2, calls)
	_, callbacks := l.Pending()
	assert.Equal(t, 1, callbacks)
}

func TestDeadlineFollowsBudget(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	l := idle.New(idle.WithBudget(4*time.Millisecond), idle.WithClock(clock.Now))

	var seen []time.Duration
	l.RequestIdleCallback(func(d fiber.Deadline) {
		seen = append(seen, d.TimeRemaining())
		clock.Advance(3 * time.Millisecond)
		seen = append(seen, d.TimeRemaining())
		clock.Advance(3 * time.Millisecond)
		seen = append(seen, d.TimeRemaining())
	})
	l.RunFrame()

	assert.Equal(t, []time.Duration{4 * time.Millisecond, time.Millisecond, 0}, seen)
}

func TestReconcilerSlicesWorkAcrossFrames(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	l := idle.New(idle.WithBudget(2*time.Millisecond), idle.WithClock(clock.Now))
	doc := memdom.NewDocument()
	root := doc.CreateContainer("root")

	committed := 0
	r := fiber.NewReconciler(doc, fiber.WithOnCommit(func(*fiber.Reconciler, *fiber.Fiber) {
		committed++
	}))
	r.Schedule(l)

	// each item costs a millisecond of fake time while it renders
	slow := func(p fiber.Props) *fiber.Element {
		clock.Advance(time.Millisecond)
		return fiber.CreateElement("li", nil, p["n"])
	}
	items := make([]any, 10)
	for i := range items {
		items[i] = fiber.CreateElement(slow, fiber.Props{"n": i})
	}
	tree := fiber.CreateElement("ul", nil, items...)
	require.NoError(t, l.Post(func() { r.Render(tree, root) }))

	frames := 0
	for committed == 0 {
		l.RunFrame()
		frames++
		require.Less(t, frames, 100)
		if committed == 0 {
			assert.Empty(t, root.Children(), "nothing is visible before commit")
		}
	}
	assert.Greater(t, frames, 1)
	assert.Equal(t, 1, committed)
	assert.Equal(t, "0123456789", root.Text())
}

func TestRunStopsWithContext(t *testing.T) {
	l := idle.New(idle.WithInterval(time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	ran := make(chan struct{})
	require.Eventually(t, func() bool {
		return l.Post(func() { close(ran) }) == nil
	}, time.Second, time.Millisecond)
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("posted task never ran")
	}

	assert.ErrorIs(t, l.Run(ctx), idle.ErrLoopRunning)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.ErrorIs(t, l.Post(func() {}), idle.ErrLoopStopped)
}
