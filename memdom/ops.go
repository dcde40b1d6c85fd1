package memdom

import (
	"fmt"
	"strings"
)

type OpKind uint8

const (
	OpCreateElement OpKind = iota
	OpCreateText
	OpSetProperty
	OpRemoveProperty
	OpAddListener
	OpRemoveListener
	OpAppendChild
	OpRemoveChild
)

var opNames = [...]string{
	OpCreateElement:  "create-element-node",
	OpCreateText:     "create-text-node",
	OpSetProperty:    "set-property",
	OpRemoveProperty: "remove-property",
	OpAddListener:    "add-listener",
	OpRemoveListener: "remove-listener",
	OpAppendChild:    "append-child",
	OpRemoveChild:    "remove-child",
}

func (k OpKind) String() string {
	if int(k) < len(opNames) {
		return opNames[k]
	}
	return fmt.Sprintf("OpKind(%d)", uint8(k))
}

// Op is one recorded target call.
type Op struct {
	Kind   OpKind
	Node   *Node
	Parent *Node // append/remove child only
	Key    string
	Value  any
}

// String renders the op in call notation, e.g. set-property(div#2, "id", "a").
func (op Op) String() string {
	var args []string
	switch op.Kind {
	case OpCreateElement:
		args = []string{fmt.Sprintf("%q", op.Key)}
	case OpCreateText:
	case OpSetProperty:
		args = []string{op.Node.Label(), fmt.Sprintf("%q", op.Key), fmt.Sprintf("%#v", op.Value)}
	case OpRemoveProperty, OpAddListener, OpRemoveListener:
		args = []string{op.Node.Label(), fmt.Sprintf("%q", op.Key)}
	case OpAppendChild, OpRemoveChild:
		args = []string{op.Parent.Label(), op.Node.Label()}
	}
	return op.Kind.String() + "(" + strings.Join(args, ", ") + ")"
}

// Strings renders every op, handy for comparing logs in tests.
func Strings(ops []Op) []string {
	out := make([]string, len(ops))
	for i, op := range ops {
		out[i] = op.String()
	}
	return out
}
