package engine

import (
	"fmt"

	"github.com/dshills/quill/internal/engine/softtab"
)

// Command is a user-level action executed against an Editor.
type Command interface {
	// Name identifies the command in logs.
	Name() string
	// Execute runs the command.
	Execute(e *Editor) error
}

// MoveCursor moves every cursor one step, or one tab stop inside leading
// spaces.
type MoveCursor struct {
	Dir Direction
}

// Name implements Command.
func (c MoveCursor) Name() string { return "moveCursor" }

// Execute implements Command.
func (c MoveCursor) Execute(e *Editor) error {
	return e.HandleSoftTabNavigation(c.Dir, softtab.MoveCursor)
}

// DeleteChar deletes the selections, or one step next to every cursor.
type DeleteChar struct {
	Dir Direction
}

// Name implements Command.
func (c DeleteChar) Name() string { return "deleteChar" }

// Execute implements Command.
func (c DeleteChar) Execute(e *Editor) error {
	return e.HandleSoftTabNavigation(c.Dir, softtab.DeleteChar)
}

// TabKey handles the Tab key.
type TabKey struct{}

// Name implements Command.
func (TabKey) Name() string { return "tab" }

// Execute implements Command.
func (TabKey) Execute(e *Editor) error {
	_, err := e.HandleTabKey()
	return err
}

// InsertText replaces every selection with Text.
type InsertText struct {
	Text string
}

// Name implements Command.
func (c InsertText) Name() string { return "insertText" }

// Execute implements Command.
func (c InsertText) Execute(e *Editor) error {
	return e.InsertText(c.Text)
}

// DeleteLines deletes every line touched by a selection.
type DeleteLines struct{}

// Name implements Command.
func (DeleteLines) Name() string { return "deleteLines" }

// Execute implements Command.
func (DeleteLines) Execute(e *Editor) error {
	return e.DeleteLines()
}

// Undo reverts the last batch.
type Undo struct{}

// Name implements Command.
func (Undo) Name() string { return "undo" }

// Execute implements Command.
func (Undo) Execute(e *Editor) error {
	return e.Undo()
}

// Redo reapplies the last undone batch.
type Redo struct{}

// Name implements Command.
func (Redo) Name() string { return "redo" }

// Execute implements Command.
func (Redo) Execute(e *Editor) error {
	return e.Redo()
}

// Execute runs cmd against the editor.
func (e *Editor) Execute(cmd Command) error {
	if cmd == nil {
		return ErrNilCommand
	}
	if err := cmd.Execute(e); err != nil {
		return fmt.Errorf("%s: %w", cmd.Name(), err)
	}
	return nil
}
