// Package engine provides the editing session at the core of quill.
//
// An Editor owns a document, a normalized multi-selection and an undo
// history with named restore points. Every user-level operation touches all
// selections at once and applies its edits as one batch, so the document,
// the history and change listeners each see a single coherent change.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - buffer: line-addressed text with atomic multi-range edits
//   - selection: immutable selections, normalization and line expansion
//   - history: undo/redo records and named checkpoints
//   - indent: column arithmetic and language-aware indentation
//   - softtab: tab-stop movement and deletion inside leading spaces
//   - smarttab: the Tab key
//
// The planners in softtab and smarttab are pure. The Editor feeds them the
// current text and selections and applies what they return.
//
// # Basic Usage
//
//	e := engine.New("function foo() {\n\n}", engine.WithLanguage("foo.js", ""))
//
//	e.SetCursor(engine.Pos(1, 0))
//	e.HandleTabKey() // line 1 becomes four spaces, cursor at {1,4}
//
//	e.Execute(engine.InsertText{Text: "bar();"})
//	e.Undo()
//
// # Multiple Selections
//
// SetSelections installs a list of selections. They are sorted, touching
// or overlapping ones are merged and exactly one is primary:
//
//	e.SetSelections([]engine.Selection{
//	    selection.NewCursor(engine.Pos(0, 4)),
//	    selection.New(engine.Pos(2, 0), engine.Pos(1, 2)),
//	})
//
// # Restore Points
//
// A restore point remembers the current place in history:
//
//	e.CreateHistoryRestorePoint("before-format")
//	// ... edits ...
//	err := e.RestoreHistoryPoint("before-format")
//
// Restoring undoes every later batch, so they can still be redone. A
// restore point created before SetText fails with ErrStaleCheckpoint.
//
// # Thread Safety
//
// All Editor methods are safe for concurrent use and run one at a time.
// Change listeners run after the operation that produced the change has
// released the editor, so they may call back into it.
package engine
