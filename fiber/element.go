package fiber

import "fmt"

// TextElement is the reserved host tag of text leaves.
const TextElement = "TEXT"

const (
	ChildrenKey  = "children"
	NodeValueKey = "nodeValue"
)

// Component renders props into a single element. A nil result renders nothing.
type Component func(props Props) *Element

// Props is the property mapping of an element. The children key always holds
// a []*Element once the element went through CreateElement.
type Props map[string]any

// Children returns the normalized child list, nil if there is none.
func (p Props) Children() []*Element {
	children, _ := p[ChildrenKey].([]*Element)
	return children
}

// Element describes what should exist at one tree position. Type is a host
// tag string or a Component. Elements are never mutated after creation.
type Element struct {
	Type  any
	Props Props
}

func CreateElement(typ any, props Props, children ...any) *Element {
	p := make(Props, len(props)+1)
	for k, v := range props {
		p[k] = v
	}

	normalized := make([]*Element, 0, len(children))
	for _, child := range children {
		normalized = appendChild(normalized, child)
	}
	p[ChildrenKey] = normalized

	return &Element{Type: typ, Props: p}
}

func appendChild(dst []*Element, child any) []*Element {
	switch c := child.(type) {
	case nil:
		return dst
	case *Element:
		if c == nil {
			return dst
		}
		return append(dst, c)
	case Element:
		return append(dst, &c)
	case []*Element:
		for _, el := range c {
			dst = appendChild(dst, el)
		}
		return dst
	default:
		return append(dst, CreateTextElement(c))
	}
}

// CreateTextElement wraps any value into a text leaf holding its string form.
func CreateTextElement(v any) *Element {
	return &Element{
		Type: TextElement,
		Props: Props{
			NodeValueKey: fmt.Sprint(v),
			ChildrenKey:  []*Element{},
		},
	}
}
