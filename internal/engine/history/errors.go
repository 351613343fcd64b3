package history

import "errors"

// Errors returned by history operations.
var (
	// ErrNothingToUndo indicates the done stack is empty.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo indicates the undone stack is empty.
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrUnknownCheckpoint indicates no checkpoint is bound to the name.
	ErrUnknownCheckpoint = errors.New("unknown checkpoint")

	// ErrStaleCheckpoint indicates the log no longer holds the state the
	// checkpoint was taken at.
	ErrStaleCheckpoint = errors.New("stale checkpoint")
)
