package fiber_test

import (
	"testing"

	"github.com/delaneyj/tinyfiber/fiber"
	"github.com/delaneyj/tinyfiber/memdom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clicks struct{ n int }

func (c *clicks) HandleEvent(*memdom.Event) { c.n++ }

func button(props fiber.Props) *fiber.Element {
	return fiber.CreateElement("button", props, "go")
}

func TestPlainPropRemovedAndAdded(t *testing.T) {
	doc, root, r := setup(t)
	flush(t, r, button(fiber.Props{"id": "b", "title": "old"}), root)
	doc.ResetOps()

	flush(t, r, button(fiber.Props{"id": "b", "disabled": true}), root)
	assertOps(t, doc,
		`remove-property(button#2, "title")`,
		`set-property(button#2, "disabled", true)`,
	)
}

func TestStableListenerIsKept(t *testing.T) {
	doc, root, r := setup(t)
	c := &clicks{}
	flush(t, r, button(fiber.Props{"onClick": c}), root)
	assertOps(t, doc,
		`create-element-node("button")`,
		`add-listener(button#2, "click")`,
		`create-text-node()`,
		`set-property(text#3, "nodeValue", "go")`,
		`append-child(button#2, text#3)`,
		`append-child(root#1, button#2)`,
	)

	flush(t, r, button(fiber.Props{"onClick": c}), root)
	assertOps(t, doc)

	btn := root.Children()[0]
	assert.Equal(t, 1, doc.Dispatch(btn, "click", nil))
	assert.Equal(t, 1, c.n)
}

func TestChangedListenerIsReplaced(t *testing.T) {
	doc, root, r := setup(t)
	first, second := &clicks{}, &clicks{}
	flush(t, r, button(fiber.Props{"onClick": first}), root)
	doc.ResetOps()

	flush(t, r, button(fiber.Props{"onClick": second}), root)
	assertOps(t, doc,
		`remove-listener(button#2, "click")`,
		`add-listener(button#2, "click")`,
	)

	btn := root.Children()[0]
	require.Equal(t, 1, btn.ListenerCount("click"))
	doc.Dispatch(btn.Children()[0], "click", nil)
	assert.Equal(t, 0, first.n)
	assert.Equal(t, 1, second.n)
}

func TestRemovedListenerIsDetached(t *testing.T) {
	doc, root, r := setup(t)
	flush(t, r, button(fiber.Props{"onClick": &clicks{}}), root)
	doc.ResetOps()

	flush(t, r, button(nil), root)
	assertOps(t, doc, `remove-listener(button#2, "click")`)
	assert.Equal(t, 0, root.Children()[0].ListenerCount("click"))
}

func counter(n *int) func(*memdom.Event) {
	return func(*memdom.Event) { *n++ }
}

func TestSameFuncListenerIsKept(t *testing.T) {
	doc, root, r := setup(t)
	count := 0
	handler := counter(&count)
	flush(t, r, button(fiber.Props{"onClick": handler}), root)
	doc.ResetOps()

	flush(t, r, button(fiber.Props{"onClick": handler}), root)
	assertOps(t, doc)

	btn := root.Children()[0]
	assert.Equal(t, 1, btn.ListenerCount("click"))
	doc.Dispatch(btn, "click", nil)
	assert.Equal(t, 1, count)
}

func TestFreshClosureIsReattached(t *testing.T) {
	doc, root, r := setup(t)
	before, after := 0, 0
	flush(t, r, button(fiber.Props{"onClick": counter(&before)}), root)
	doc.ResetOps()

	flush(t, r, button(fiber.Props{"onClick": counter(&after)}), root)
	assertOps(t, doc,
		`remove-listener(button#2, "click")`,
		`add-listener(button#2, "click")`,
	)

	btn := root.Children()[0]
	require.Equal(t, 1, btn.ListenerCount("click"))
	doc.Dispatch(btn, "click", nil)
	assert.Equal(t, 0, before)
	assert.Equal(t, 1, after)
}

func TestReferencePropsCompareByIdentity(t *testing.T) {
	doc, root, r := setup(t)
	style := map[string]string{"color": "red"}
	flush(t, r, button(fiber.Props{"style": style}), root)
	doc.ResetOps()

	flush(t, r, button(fiber.Props{"style": style}), root)
	assertOps(t, doc)

	flush(t, r, button(fiber.Props{"style": map[string]string{"color": "red"}}), root)
	require.Len(t, doc.Ops(), 1)
	assert.Equal(t, memdom.OpSetProperty, doc.Ops()[0].Kind)
}
