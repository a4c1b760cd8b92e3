package datastructures

import "errors"

var (
	// ErrNotHead is returned by head-anchored operations when the receiver
	// has a back-link.
	ErrNotHead = errors.New("node is not a chain head: prev should be nil")

	// ErrNilNode is returned when a required node is nil.
	ErrNilNode = errors.New("node should not be nil")

	// ErrNilArgument is returned when a required value or callback is nil.
	ErrNilArgument = errors.New("argument should not be nil")

	// ErrNotReference is returned when a stored value is not a pointer.
	ErrNotReference = errors.New("value should be a pointer")

	// ErrNilHelper is returned when the helper is nil or already destroyed.
	ErrNilHelper = errors.New("helper should not be nil")

	// ErrReleased is returned when operating on a node whose storage was released.
	ErrReleased = errors.New("node has been released")

	// ErrSameChain is returned by Join when the target already belongs to
	// the receiver's chain.
	ErrSameChain = errors.New("target already belongs to this chain")
)
