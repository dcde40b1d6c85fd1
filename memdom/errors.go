package memdom

import "errors"

var (
	// ErrInvalidHandle is returned when a handle is not a *Node of the document.
	ErrInvalidHandle = errors.New("memdom: invalid handle")

	// ErrNotChild is returned when removing a node from a parent that does not
	// hold it.
	ErrNotChild = errors.New("memdom: node is not a child of parent")

	// ErrBadListener is returned for listeners that are neither func(*Event)
	// nor EventListener.
	ErrBadListener = errors.New("memdom: unsupported listener type")

	// ErrTextChildren is returned when appending children to a text node.
	ErrTextChildren = errors.New("memdom: text nodes cannot have children")
)
