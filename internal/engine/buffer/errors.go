package buffer

import "errors"

// Errors returned by buffer operations.
var (
	// ErrInvalidPosition indicates a position outside the buffer.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrInvalidRange indicates a range whose end precedes its start.
	ErrInvalidRange = errors.New("invalid range")

	// ErrOverlappingEdits indicates two edits in one batch overlap.
	ErrOverlappingEdits = errors.New("edits overlap")
)
