package fiber

import "errors"

var (
	// ErrUnknownElementType is returned when an element type is neither a host
	// tag nor a Component.
	ErrUnknownElementType = errors.New("unknown element type")

	// ErrDeletionInLiveTree marks a deletion fiber reached through the live
	// child chain. It is only ever raised as a panic value.
	ErrDeletionInLiveTree = errors.New("deletion fiber in live tree")

	// ErrPassAbandoned wraps errors that aborted a render pass.
	ErrPassAbandoned = errors.New("render pass abandoned")
)
