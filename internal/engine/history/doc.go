// Package history provides undo/redo for the editor engine, plus named
// checkpoints over the undo log.
//
// # Records
//
// Every user-visible command that changes text is stored as one Record:
// the batch of edits it applied, the inverse batch that undoes it, and the
// selections before and after. Records carry a sequence number that only
// ever grows, so a record can be identified even after older records have
// been dropped from a bounded log.
//
// # History Stack
//
// The History type keeps a done stack and an undone stack:
//
//	h := NewHistory(1000) // Max 1000 undo entries
//
//	h.Push(&Record{Edits: edits, Inverse: inverse, Before: before, After: after})
//
//	// Undo/redo against anything that can apply edits and restore selections
//	h.Undo(target)
//	h.Redo(target)
//
// Pushing a record clears the undone stack. Clear empties both stacks and
// starts a new epoch.
//
// # Checkpoints
//
// A checkpoint binds a name to the current top of the done stack:
//
//	h.CreateCheckpoint("before-format", selections)
//	// ... more edits ...
//	err := h.RestoreCheckpoint("before-format", target)
//
// Restoring undoes records until the bound record is on top again, so the
// undone records stay available to Redo, then restores the selections saved
// with the checkpoint and unbinds the name. A checkpoint from an earlier
// epoch, or whose record is no longer on the done stack, is stale and
// restoring it fails with ErrStaleCheckpoint without touching the document.
package history
