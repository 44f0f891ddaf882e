package interaction

import "errors"

var (
	// ErrBusy is returned when a gesture starts while another is active.
	ErrBusy = errors.New("another gesture is in progress")
	// ErrNotEligible is returned for items that cannot be dragged.
	ErrNotEligible = errors.New("item is not eligible for interaction")
	// ErrResizeUnsupported is returned when resizing a milestone.
	ErrResizeUnsupported = errors.New("milestones cannot be resized")
	// ErrUnknownControl is returned for a pointer-down outside body and handles.
	ErrUnknownControl = errors.New("unrecognised control")
	// ErrUnknownItem is returned when the target id is not in the snapshot.
	ErrUnknownItem = errors.New("unknown item")
)
