package engine

import (
	"errors"

	"github.com/dshills/quill/internal/engine/buffer"
	"github.com/dshills/quill/internal/engine/history"
)

// Errors returned by Editor operations.
var (
	// ErrInvalidPosition indicates a position outside the document.
	ErrInvalidPosition = buffer.ErrInvalidPosition

	// ErrOverlappingEdits indicates a batch whose edits overlap.
	ErrOverlappingEdits = buffer.ErrOverlappingEdits

	// ErrNothingToUndo indicates the done stack is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the undone stack is empty.
	ErrNothingToRedo = history.ErrNothingToRedo

	// ErrUnknownCheckpoint indicates a checkpoint name that is not bound.
	ErrUnknownCheckpoint = history.ErrUnknownCheckpoint

	// ErrStaleCheckpoint indicates a checkpoint invalidated by a history reset.
	ErrStaleCheckpoint = history.ErrStaleCheckpoint

	// ErrInvalidDirection indicates a direction other than -1 or +1.
	ErrInvalidDirection = errors.New("invalid direction")

	// ErrNoSelections indicates an attempt to install an empty selection list.
	ErrNoSelections = errors.New("selection list is empty")

	// ErrNilCommand indicates Execute was called without a command.
	ErrNilCommand = errors.New("nil command")

	// ErrReadOnly indicates an edit was attempted on a read-only editor.
	ErrReadOnly = errors.New("editor is read-only")
)
