package menu

import "errors"

// Structural errors fail fast: the offending mutation is rejected before
// the flat order list is touched, so callers never observe a partially
// committed pack or move.
var (
	// ErrSizeExceeded is returned when a widget's natural size cannot fit
	// a non-relaxed Frame's bound.
	ErrSizeExceeded = errors.New("menu: widget exceeds frame bound")

	// ErrTopology is returned for cyclic or foreign packing: a frame into
	// itself, into one of its descendants, or across unrelated menus.
	ErrTopology = errors.New("menu: invalid container topology")

	// ErrNotAttached is returned when packing into a Frame that is not
	// yet attached to a Menu.
	ErrNotAttached = errors.New("menu: frame not attached to a menu")

	// ErrAlreadyPacked is returned when the widget already belongs to a
	// Frame.
	ErrAlreadyPacked = errors.New("menu: widget already packed")

	// ErrNotPacked is returned when unpacking a widget the Frame does not
	// contain.
	ErrNotPacked = errors.New("menu: widget not packed in this frame")

	// ErrNotInMenu is returned when an operation references a widget the
	// Menu does not own.
	ErrNotInMenu = errors.New("menu: widget not added to this menu")
)
