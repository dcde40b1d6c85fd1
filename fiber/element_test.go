package fiber_test

import (
	"testing"

	"github.com/delaneyj/tinyfiber/fiber"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateElementNormalizesChildren(t *testing.T) {
	el := fiber.CreateElement("div", nil, "hi", 5)

	assert.Equal(t, "div", el.Type)
	children := el.Props.Children()
	require.Len(t, children, 2)
	for i, want := range []string{"hi", "5"} {
		assert.Equal(t, fiber.TextElement, children[i].Type)
		assert.Equal(t, want, children[i].Props[fiber.NodeValueKey])
		assert.Empty(t, children[i].Props.Children())
	}
}

func TestCreateElementKeepsElementsAndCopiesProps(t *testing.T) {
	props := fiber.Props{"id": "a"}
	span := fiber.CreateElement("span", nil)
	el := fiber.CreateElement("div", props, span, nil, []*fiber.Element{span}, true)

	children := el.Props.Children()
	require.Len(t, children, 3)
	assert.Same(t, span, children[0])
	assert.Same(t, span, children[1])
	assert.Equal(t, "true", children[2].Props[fiber.NodeValueKey])

	assert.Equal(t, "a", el.Props["id"])
	_, leaked := props[fiber.ChildrenKey]
	assert.False(t, leaked, "input props must not be mutated")
}

func TestCreateElementWithoutChildren(t *testing.T) {
	el := fiber.CreateElement("br", nil)
	children, ok := el.Props[fiber.ChildrenKey].([]*fiber.Element)
	require.True(t, ok)
	assert.NotNil(t, children)
	assert.Empty(t, children)
}

func TestCreateElementAcceptsAnyType(t *testing.T) {
	el := fiber.CreateElement(42, nil)
	assert.Equal(t, 42, el.Type)
}
