package engine

import (
	"fmt"

	"github.com/dshills/quill/internal/engine/buffer"
	"github.com/dshills/quill/internal/engine/history"
	"github.com/dshills/quill/internal/engine/selection"
	"github.com/dshills/quill/internal/engine/smarttab"
	"github.com/dshills/quill/internal/engine/softtab"
)

// Direction is an alias for softtab.Direction for convenience.
type Direction = softtab.Direction

// Re-export directions.
const (
	Backward = softtab.Backward
	Forward  = softtab.Forward
)

// applyLocked applies edits as one batch, installs after as the new
// selection set and records the batch for undo. With no edits only the
// selections change and nothing is recorded.
func (e *Editor) applyLocked(label string, edits []Edit, after []Selection) error {
	if len(edits) == 0 {
		e.sels = selection.NewSet(after...)
		return nil
	}
	if e.readOnly {
		return ErrReadOnly
	}

	before := e.sels.All()
	inverse, err := e.buf.ApplyEdits(edits)
	if err != nil {
		e.log.Warn("%s rejected: %v", label, err)
		return err
	}

	e.sels = selection.NewSet(after...)
	rec := e.history.Push(history.NewRecord(label, buffer.SortEdits(edits), inverse, before, e.sels.All()))
	e.log.Debug("%s: %d edits, %d selections, record %d", label, len(edits), e.sels.Len(), rec.Seq)
	return nil
}

// HandleSoftTabNavigation moves every cursor or deletes one step in dir.
// Inside leading spaces a step is a whole tab stop when soft tabs are on
// and every cursor can take it.
func (e *Editor) HandleSoftTabNavigation(dir Direction, cmd softtab.Command) error {
	if !dir.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidDirection, dir)
	}

	e.mu.Lock()
	defer e.unlock()

	s := softtab.Settings{
		SoftTabs:   e.settings.SoftTabs,
		UseTabs:    e.settings.UseTabs,
		IndentUnit: e.settings.IndentUnit,
		Policy:     e.settings.SoftTabPolicy,
	}
	plan := softtab.Navigate(e.buf, e.sels.All(), dir, cmd, s)
	e.log.Debug("%s %s: soft tab %v", cmd, dir, plan.SoftTab)

	return e.applyLocked(cmd.String(), plan.Edits, plan.Selections)
}

// HandleTabKey indents or inserts indentation for every selection, and
// reports the strategy used.
func (e *Editor) HandleTabKey() (smarttab.Strategy, error) {
	e.mu.Lock()
	defer e.unlock()

	s := smarttab.Settings{
		UseTabs:    e.settings.UseTabs,
		IndentUnit: e.settings.IndentUnit,
		TabWidth:   e.settings.TabWidth,
	}
	plan := smarttab.HandleTab(e.buf, e.sels.All(), e.indenter, s)
	e.log.Debug("tab: %s (fallback %v)", plan.Strategy, plan.Fallback)

	return plan.Strategy, e.applyLocked("tab:"+plan.Strategy.String(), plan.Edits, plan.Selections)
}

// InsertText replaces every selection with text, leaving a cursor after
// each insertion.
func (e *Editor) InsertText(text string) error {
	e.mu.Lock()
	defer e.unlock()

	sels := e.sels.All()
	edits := make([]Edit, len(sels))
	for i, sel := range sels {
		edits[i] = buffer.NewEdit(sel.Range(), text)
	}

	after := selection.TransformAll(sels, edits, buffer.BiasAfter)
	for i := range after {
		after[i] = after[i].CollapseToEnd()
	}

	return e.applyLocked("insert", nonEmpty(edits), after)
}

// ReplaceRange replaces r with text. Selections are mapped through the
// edit.
func (e *Editor) ReplaceRange(r Range, text string) error {
	e.mu.Lock()
	defer e.unlock()

	edits := []Edit{buffer.NewEdit(r, text)}
	if err := e.validateLocked(r.Start, r.End); err != nil {
		return err
	}

	return e.applyLocked("replace", nonEmpty(edits), selection.TransformAll(e.sels.All(), edits, buffer.BiasAfter))
}

// DeleteLines deletes every line touched by a selection. The selections in
// each deleted block collapse to a cursor where the block was.
func (e *Editor) DeleteLines() error {
	e.mu.Lock()
	defer e.unlock()

	groups := selection.ConvertToLineSelections(e.sels.All(), selection.DefaultLineOptions())
	lineCount := e.buf.LineCount()

	edits := make([]Edit, 0, len(groups))
	anchors := make([]Position, 0, len(groups))
	for _, g := range groups {
		r := g.SelectionForEdit.Range()
		anchor := r.Start
		if r.End.Line >= lineCount {
			// The block runs to the end: take the preceding line break
			// instead of the missing following one.
			r.End = e.buf.End()
			if r.Start.Line > 0 {
				prev := r.Start.Line - 1
				r.Start = Pos(prev, e.buf.LineLen(prev))
				anchor = Pos(prev, 0)
			}
		}
		edits = append(edits, buffer.NewDelete(r))
		anchors = append(anchors, anchor)
	}

	after := make([]Selection, len(groups))
	for i, g := range groups {
		primary := false
		for _, sel := range g.SelectionsToTrack {
			primary = primary || sel.Primary
		}
		p := buffer.MapPosition(anchors[i], edits, buffer.BiasBefore)
		after[i] = selection.NewCursor(p).WithPrimary(primary)
	}

	return e.applyLocked("deleteLines", nonEmpty(edits), after)
}

// nonEmpty drops edits that change nothing.
func nonEmpty(edits []Edit) []Edit {
	out := edits[:0:0]
	for _, edit := range edits {
		if !edit.IsNoOp() {
			out = append(out, edit)
		}
	}
	return out
}

// ============================================================================
// History
// ============================================================================

// target lets the history log drive the editor while e.mu is held.
type target struct {
	e *Editor
}

func (t target) ApplyEdits(edits []Edit) ([]Edit, error) {
	return t.e.buf.ApplyEdits(edits)
}

func (t target) RestoreSelections(sels []Selection) {
	if len(sels) == 0 {
		t.e.sels = selection.NewSetAt(Pos(0, 0))
		return
	}
	for i := range sels {
		sels[i].Start = t.e.buf.Clip(sels[i].Start)
		sels[i].End = t.e.buf.Clip(sels[i].End)
	}
	t.e.sels = selection.NewSet(sels...)
}

// Undo reverts the last recorded batch and restores the selections it
// started from.
func (e *Editor) Undo() error {
	e.mu.Lock()
	defer e.unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	rec, err := e.history.Undo(target{e})
	if err != nil {
		return err
	}
	e.log.Debug("undo %s", rec)
	return nil
}

// Redo reapplies the last undone batch and restores the selections it
// produced.
func (e *Editor) Redo() error {
	e.mu.Lock()
	defer e.unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	rec, err := e.history.Redo(target{e})
	if err != nil {
		return err
	}
	e.log.Debug("redo %s", rec)
	return nil
}

// CanUndo returns true if undo is available.
func (e *Editor) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Editor) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.CanRedo()
}

// History returns the sizes of the undo and redo stacks.
func (e *Editor) History() HistoryState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.State()
}

// CreateHistoryRestorePoint binds name to the current point in history and
// the current selections, replacing any earlier binding.
func (e *Editor) CreateHistoryRestorePoint(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.history.CreateCheckpoint(name, e.sels.All())
	e.log.Debug("checkpoint %q at %d done", name, e.history.State().Done)
}

// RestoreHistoryPoint undoes every batch recorded after the checkpoint
// name, moving them to the redo stack, and restores its selections. The
// name is unbound afterwards.
func (e *Editor) RestoreHistoryPoint(name string) error {
	e.mu.Lock()
	defer e.unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	if err := e.history.RestoreCheckpoint(name, target{e}); err != nil {
		e.log.Warn("restore checkpoint: %v", err)
		return err
	}
	e.log.Debug("restored checkpoint %q", name)
	return nil
}

// HistoryRestorePoints returns the bound checkpoint names in sorted order.
func (e *Editor) HistoryRestorePoints() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Checkpoints()
}
