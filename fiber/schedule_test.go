package fiber_test

import (
	"errors"
	"testing"
	"time"

	"github.com/delaneyj/tinyfiber/fiber"
	"github.com/delaneyj/tinyfiber/memdom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	queue []func(fiber.Deadline)
}

func (h *fakeHost) RequestIdleCallback(cb func(fiber.Deadline)) {
	h.queue = append(h.queue, cb)
}

func (h *fakeHost) tick(d fiber.Deadline) {
	queue := h.queue
	h.queue = nil
	for _, cb := range queue {
		cb(d)
	}
}

func TestScheduleRequestsItselfAgain(t *testing.T) {
	doc := memdom.NewDocument()
	root := doc.CreateContainer("root")
	r := fiber.NewReconciler(doc)
	host := &fakeHost{}

	r.Schedule(host)
	require.Len(t, host.queue, 1)

	host.tick(fiber.Unlimited)
	require.Len(t, host.queue, 1, "idle ticks keep the loop alive")

	r.Render(app("one"), root)
	ticks := 0
	for r.WorkInProgress() != nil {
		host.tick(fiber.Exhausted)
		require.Len(t, host.queue, 1)
		ticks++
	}
	assert.Equal(t, 9, ticks)
	assert.Equal(t, "Helloone", root.Text())
}

func TestScheduleReportsErrors(t *testing.T) {
	doc := memdom.NewDocument()
	root := doc.CreateContainer("root")
	var reported []error
	r := fiber.NewReconciler(doc, fiber.WithOnError(func(_ *fiber.Reconciler, err error) {
		reported = append(reported, err)
	}))
	host := &fakeHost{}
	r.Schedule(host)

	r.Render(fiber.CreateElement(struct{}{}, nil), root)
	host.tick(fiber.Unlimited)

	require.Len(t, reported, 1)
	assert.True(t, errors.Is(reported[0], fiber.ErrUnknownElementType))
	assert.Len(t, host.queue, 1)
}

func TestWorkLoopHonorsYieldThreshold(t *testing.T) {
	doc := memdom.NewDocument()
	root := doc.CreateContainer("root")
	r := fiber.NewReconciler(doc, fiber.WithYieldThreshold(5*time.Millisecond))

	remaining := 3
	d := fiber.DeadlineFunc(func() time.Duration {
		remaining--
		if remaining > 0 {
			return time.Second
		}
		return time.Millisecond
	})

	r.Render(app("one"), root)
	require.NoError(t, r.WorkLoop(d))
	// three units ran, the third check came in under the threshold
	assert.Equal(t, fiber.PhaseRunning, r.Phase())
	assert.Empty(t, doc.Ops())

	require.NoError(t, r.Flush())
	assert.Equal(t, fiber.PhaseIdle, r.Phase())
	assert.NotEmpty(t, doc.Ops())
}

func TestStepStatuses(t *testing.T) {
	_, root, r := setup(t)
	status, err := r.Step()
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusIdle, status)

	r.Render(fiber.CreateElement("div", nil), root)
	status, err = r.Step()
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusContinuing, status)

	status, err = r.Step()
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCommitted, status)
	assert.Equal(t, fiber.PhaseIdle, r.Phase())
	assert.Equal(t, uint64(1), r.Current().Generation())
}
