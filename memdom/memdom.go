// Package memdom is an in-memory render target. It keeps a small DOM-like
// node tree and records every call made to it, which makes it the target of
// choice for tests and for the fibertree command.
package memdom

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unsafe"

	mapset "github.com/deckarep/golang-set/v2"
)

const (
	TextTag      = "#text"
	NodeValueKey = "nodeValue"
)

// Event is passed to listeners by Dispatch.
type Event struct {
	Type    string
	Target  *Node
	Current *Node
	Detail  any

	stopped bool
}

func (e *Event) StopPropagation() { e.stopped = true }

type EventListener interface {
	HandleEvent(e *Event)
}

type ListenerFunc func(e *Event)

func (f ListenerFunc) HandleEvent(e *Event) { f(e) }

type listener struct {
	raw     any
	handler EventListener
}

type Node struct {
	ID  int
	Tag string

	doc       *Document
	props     map[string]any
	parent    *Node
	children  []*Node
	listeners map[string][]listener
}

func (n *Node) IsText() bool        { return n.Tag == TextTag }
func (n *Node) Parent() *Node       { return n.parent }
func (n *Node) Document() *Document { return n.doc }

// Label is the short name used in op logs, e.g. div#3.
func (n *Node) Label() string {
	if n == nil {
		return "<nil>"
	}
	if n.IsText() {
		return "text#" + strconv.Itoa(n.ID)
	}
	return n.Tag + "#" + strconv.Itoa(n.ID)
}

func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

func (n *Node) Prop(key string) (any, bool) {
	v, ok := n.props[key]
	return v, ok
}

func (n *Node) PropKeys() []string {
	keys := make([]string, 0, len(n.props))
	for k := range n.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (n *Node) ListenerCount(event string) int {
	return len(n.listeners[event])
}

// Text returns the node value of a text node or the concatenated text of an
// element's descendants.
func (n *Node) Text() string {
	if n.IsText() {
		s, _ := n.props[NodeValueKey].(string)
		return s
	}
	var sb strings.Builder
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.IsText() {
			sb.WriteString(cur.Text())
			continue
		}
		for i := len(cur.children) - 1; i >= 0; i-- {
			stack = append(stack, cur.children[i])
		}
	}
	return sb.String()
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

func (n *Node) detach() {
	if n.parent == nil {
		return
	}
	if i := n.parent.indexOf(n); i >= 0 {
		n.parent.children = append(n.parent.children[:i], n.parent.children[i+1:]...)
	}
	n.parent = nil
}

// Document owns nodes and the op log. It is not safe for concurrent use.
type Document struct {
	nextID     int
	ops        []Op
	containers []*Node
	nodes      mapset.Set[*Node]
}

func NewDocument() *Document {
	return &Document{
		nodes: mapset.NewThreadUnsafeSet[*Node](),
	}
}

func (d *Document) newNode(tag string) *Node {
	d.nextID++
	n := &Node{
		ID:        d.nextID,
		Tag:       tag,
		doc:       d,
		props:     map[string]any{},
		listeners: map[string][]listener{},
	}
	d.nodes.Add(n)
	return n
}

// CreateContainer makes a root node to render into. It is not recorded.
func (d *Document) CreateContainer(tag string) *Node {
	n := d.newNode(tag)
	d.containers = append(d.containers, n)
	return n
}

func (d *Document) Containers() []*Node {
	out := make([]*Node, len(d.containers))
	copy(out, d.containers)
	return out
}

func (d *Document) Ops() []Op {
	out := make([]Op, len(d.ops))
	copy(out, d.ops)
	return out
}

func (d *Document) ResetOps() { d.ops = d.ops[:0] }

// Attached is every non-container node reachable from a container.
func (d *Document) Attached() mapset.Set[*Node] {
	attached := mapset.NewThreadUnsafeSet[*Node]()
	var stack []*Node
	for _, c := range d.containers {
		stack = append(stack, c.children...)
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		attached.Add(n)
		stack = append(stack, n.children...)
	}
	return attached
}

// Detached is every created node that no container reaches.
func (d *Document) Detached() mapset.Set[*Node] {
	detached := d.nodes.Difference(d.Attached())
	for _, c := range d.containers {
		detached.Remove(c)
	}
	return detached
}

// Forget drops detached nodes from the document and reports how many.
func (d *Document) Forget() int {
	detached := d.Detached()
	for n := range detached.Iter() {
		d.nodes.Remove(n)
	}
	return detached.Cardinality()
}

func (d *Document) node(h any) (*Node, error) {
	n, ok := h.(*Node)
	if !ok || n == nil || n.doc != d {
		return nil, fmt.Errorf("%w: %T", ErrInvalidHandle, h)
	}
	return n, nil
}

func (d *Document) record(op Op) {
	d.ops = append(d.ops, op)
}

func (d *Document) CreateElement(tag string) (any, error) {
	n := d.newNode(tag)
	d.record(Op{Kind: OpCreateElement, Node: n, Key: tag})
	return n, nil
}

func (d *Document) CreateText() (any, error) {
	n := d.newNode(TextTag)
	n.props[NodeValueKey] = ""
	d.record(Op{Kind: OpCreateText, Node: n})
	return n, nil
}

func (d *Document) SetProperty(h any, key string, value any) error {
	n, err := d.node(h)
	if err != nil {
		return err
	}
	n.props[key] = value
	d.record(Op{Kind: OpSetProperty, Node: n, Key: key, Value: value})
	return nil
}

func (d *Document) RemoveProperty(h any, key string) error {
	n, err := d.node(h)
	if err != nil {
		return err
	}
	delete(n.props, key)
	d.record(Op{Kind: OpRemoveProperty, Node: n, Key: key})
	return nil
}

func (d *Document) AddListener(h any, event string, fn any) error {
	n, err := d.node(h)
	if err != nil {
		return err
	}
	var handler EventListener
	switch l := fn.(type) {
	case func(*Event):
		handler = ListenerFunc(l)
	case EventListener:
		handler = l
	default:
		return fmt.Errorf("%w: %T", ErrBadListener, fn)
	}
	n.listeners[event] = append(n.listeners[event], listener{raw: fn, handler: handler})
	d.record(Op{Kind: OpAddListener, Node: n, Key: event, Value: fn})
	return nil
}

// RemoveListener detaches the first listener for event that is fn. Removing
// an unknown listener does nothing, as in a browser.
func (d *Document) RemoveListener(h any, event string, fn any) error {
	n, err := d.node(h)
	if err != nil {
		return err
	}
	ls := n.listeners[event]
	for i, l := range ls {
		if sameListener(l.raw, fn) {
			n.listeners[event] = append(ls[:i], ls[i+1:]...)
			break
		}
	}
	if len(n.listeners[event]) == 0 {
		delete(n.listeners, event)
	}
	d.record(Op{Kind: OpRemoveListener, Node: n, Key: event, Value: fn})
	return nil
}

// AppendChild moves child to the end of parent's children.
func (d *Document) AppendChild(parent, child any) error {
	p, err := d.node(parent)
	if err != nil {
		return err
	}
	c, err := d.node(child)
	if err != nil {
		return err
	}
	if p.IsText() {
		return ErrTextChildren
	}
	c.detach()
	c.parent = p
	p.children = append(p.children, c)
	d.record(Op{Kind: OpAppendChild, Node: c, Parent: p})
	return nil
}

func (d *Document) RemoveChild(parent, child any) error {
	p, err := d.node(parent)
	if err != nil {
		return err
	}
	c, err := d.node(child)
	if err != nil {
		return err
	}
	if c.parent != p {
		return fmt.Errorf("%w: %s from %s", ErrNotChild, c.Label(), p.Label())
	}
	c.detach()
	d.record(Op{Kind: OpRemoveChild, Node: c, Parent: p})
	return nil
}

// Dispatch fires event at target and bubbles it up the parent chain. It
// returns how many listeners ran.
func (d *Document) Dispatch(target *Node, event string, detail any) int {
	e := &Event{Type: event, Target: target, Detail: detail}
	ran := 0
	for n := target; n != nil && !e.stopped; n = n.parent {
		e.Current = n
		ls := make([]listener, len(n.listeners[event]))
		copy(ls, n.listeners[event])
		for _, l := range ls {
			l.handler.HandleEvent(e)
			ran++
		}
	}
	return ran
}

// Find returns the first node under root, depth first, for which match
// reports true.
func Find(root *Node, match func(*Node) bool) *Node {
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if match(n) {
			return n
		}
		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, n.children[i])
		}
	}
	return nil
}

func ByTag(tag string) func(*Node) bool {
	return func(n *Node) bool { return n.Tag == tag }
}

func sameListener(a, b any) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !va.IsValid() || !vb.IsValid() || va.Type() != vb.Type() {
		return false
	}
	if va.Kind() == reflect.Func {
		return closure(a) == closure(b)
	}
	if va.Comparable() && vb.Comparable() {
		return va.Equal(vb)
	}
	return false
}

// closure reads the data word of an interface holding a func, which points at
// the closure the func value refers to.
func closure(v any) unsafe.Pointer {
	return (*[2]unsafe.Pointer)(unsafe.Pointer(&v))[1]
}
