package fiber

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// Kind discriminates the fiber shapes.
type Kind uint8

const (
	KindRoot Kind = iota
	KindHost
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindHost:
		return "host"
	case KindFunction:
		return "function"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

type EffectTag uint8

const (
	EffectNone EffectTag = iota
	EffectUpdate
	EffectPlacement
	EffectDeletion
)

func (e EffectTag) String() string {
	switch e {
	case EffectNone:
		return "NONE"
	case EffectUpdate:
		return "UPDATE"
	case EffectPlacement:
		return "PLACEMENT"
	case EffectDeletion:
		return "DELETION"
	default:
		return fmt.Sprintf("EffectTag(%d)", uint8(e))
	}
}

// Fiber mirrors one element position across renders. Only the first child is
// owned by a fiber, further children hang off the sibling chain. The alternate
// is the fiber at the same position in the previously committed tree.
type Fiber struct {
	kind      Kind
	tag       string    // KindHost only
	component Component // KindFunction only
	typeID    uintptr   // KindFunction only, code pointer of component

	props  Props
	handle Handle

	parent    *Fiber
	child     *Fiber
	sibling   *Fiber
	alternate *Fiber

	effect     EffectTag
	generation uint64
}

func (f *Fiber) Kind() Kind           { return f.kind }
func (f *Fiber) Tag() string          { return f.tag }
func (f *Fiber) Component() Component { return f.component }
func (f *Fiber) Props() Props         { return f.props }
func (f *Fiber) Handle() Handle       { return f.handle }
func (f *Fiber) Parent() *Fiber       { return f.parent }
func (f *Fiber) Child() *Fiber        { return f.child }
func (f *Fiber) Sibling() *Fiber      { return f.sibling }
func (f *Fiber) Alternate() *Fiber    { return f.alternate }
func (f *Fiber) Effect() EffectTag    { return f.effect }
func (f *Fiber) Generation() uint64   { return f.generation }

func (f *Fiber) String() string {
	switch f.kind {
	case KindHost:
		return f.tag
	case KindFunction:
		return "<" + componentName(f.component) + ">"
	default:
		return "root"
	}
}

// sameType reports whether f can be updated in place by el.
func (f *Fiber) sameType(el *Element) bool {
	kind, tag, _, id, err := classify(el.Type)
	if err != nil || kind != f.kind {
		return false
	}
	if kind == KindHost {
		return tag == f.tag
	}
	return id == f.typeID
}

// classify interprets an element type. Function identity is the code pointer,
// which is stable for declared functions.
func classify(typ any) (kind Kind, tag string, c Component, id uintptr, err error) {
	switch t := typ.(type) {
	case string:
		return KindHost, t, nil, 0, nil
	case Component:
		if t == nil {
			break
		}
		return KindFunction, "", t, reflect.ValueOf(t).Pointer(), nil
	case func(Props) *Element:
		if t == nil {
			break
		}
		return KindFunction, "", Component(t), reflect.ValueOf(t).Pointer(), nil
	}
	return 0, "", nil, 0, fmt.Errorf("%w: %T", ErrUnknownElementType, typ)
}

func createFiber(el *Element, parent *Fiber) (*Fiber, error) {
	kind, tag, c, id, err := classify(el.Type)
	if err != nil {
		return nil, err
	}
	return &Fiber{
		kind:       kind,
		tag:        tag,
		component:  c,
		typeID:     id,
		props:      el.Props,
		parent:     parent,
		generation: parent.generation,
	}, nil
}

func componentName(c Component) string {
	if c == nil {
		return "nil"
	}
	fn := runtime.FuncForPC(reflect.ValueOf(c).Pointer())
	if fn == nil {
		return "component"
	}
	name := fn.Name()
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
