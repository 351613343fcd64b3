package script

import (
	"github.com/dshills/quill/internal/engine"
)

// SetCursor replaces every selection with a cursor.
type SetCursor struct {
	Pos engine.Position
}

// Name returns the command name.
func (SetCursor) Name() string { return "cursor" }

// Execute implements engine.Command.
func (c SetCursor) Execute(e *engine.Editor) error {
	return e.SetCursor(c.Pos)
}

// Select replaces every selection with one selection.
type Select struct {
	Start    engine.Position
	End      engine.Position
	Reversed bool
}

// Name returns the command name.
func (Select) Name() string { return "select" }

// Execute implements engine.Command.
func (c Select) Execute(e *engine.Editor) error {
	return e.SetSelection(c.Start, c.End, c.Reversed)
}

// Add adds a selection from Anchor to Head.
type Add struct {
	Anchor engine.Position
	Head   engine.Position
}

// Name returns the command name.
func (Add) Name() string { return "add" }

// Execute implements engine.Command.
func (c Add) Execute(e *engine.Editor) error {
	return e.AddSelection(c.Anchor, c.Head)
}

// Checkpoint creates a named restore point.
type Checkpoint struct {
	Label string
}

// Name returns the command name.
func (Checkpoint) Name() string { return "checkpoint" }

// Execute implements engine.Command.
func (c Checkpoint) Execute(e *engine.Editor) error {
	e.CreateHistoryRestorePoint(c.Label)
	return nil
}

// Restore returns to a named restore point.
type Restore struct {
	Label string
}

// Name returns the command name.
func (Restore) Name() string { return "restore" }

// Execute implements engine.Command.
func (c Restore) Execute(e *engine.Editor) error {
	return e.RestoreHistoryPoint(c.Label)
}
