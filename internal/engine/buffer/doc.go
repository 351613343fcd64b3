// Package buffer provides the line-addressed text buffer the editor engine
// edits through.
//
// Text is held as a slice of lines without terminators. Positions are
// {Line, Ch} pairs where Ch is a byte offset within the line, so every
// position in the document is reachable without a separate offset index.
//
// The buffer package provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - Line ending normalization to "\n" on load and on edit
//   - Atomic multi-range edits that return their own inverse
//   - Position mapping through an edit batch
//   - Change listeners notified once per applied batch
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("foo\nbar")
//
//	// Replace "foo" and "bar" in a single batch
//	inverse, err := buf.ApplyEdits([]buffer.Edit{
//	    buffer.NewEdit(buffer.NewRange(buffer.Pos(0, 0), buffer.Pos(0, 3)), "baz"),
//	    buffer.NewEdit(buffer.NewRange(buffer.Pos(1, 0), buffer.Pos(1, 3)), "qux"),
//	})
//
//	// Undo by applying the inverse
//	_, err = buf.ApplyEdits(inverse)
//
// Edits in a batch are always expressed in the coordinates of the text
// before the batch. The buffer orders them and applies them back to front,
// so callers never need to adjust later edits for earlier ones.
package buffer
