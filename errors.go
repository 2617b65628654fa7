package reel

import "errors"

var (
	// ErrNotFound is returned by Replace when the old mobject is absent from
	// both the active and foreground lists.
	ErrNotFound = errors.New("mobject not found in scene")

	// ErrInvalidArgument is returned when a nil mobject is passed to a
	// scene-graph operation.
	ErrInvalidArgument = errors.New("mobject cannot be nil")

	// ErrUnsupportedRenderer is returned when the render backend lacks a
	// capability required by a capture. Fatal: the operation is never retried.
	ErrUnsupportedRenderer = errors.New("renderer does not support this operation")

	// ErrStructuralInconsistency is returned when a snapshot encounters an
	// updater whose declared refs point outside the cloned graph. Fatal.
	ErrStructuralInconsistency = errors.New("updater references a mobject outside the scene graph")
)
