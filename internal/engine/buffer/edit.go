package buffer

import (
	"fmt"
	"sort"
	"strings"
)

// Edit replaces a range of the buffer with new text.
type Edit struct {
	Range Range  // The range to replace, in pre-edit coordinates
	Text  string // The replacement text
}

// NewEdit creates a new Edit.
func NewEdit(r Range, text string) Edit {
	return Edit{Range: r, Text: text}
}

// NewInsert creates an Edit that inserts text at a position.
func NewInsert(p Position, text string) Edit {
	return Edit{Range: Range{Start: p, End: p}, Text: text}
}

// NewDelete creates an Edit that deletes a range of text.
func NewDelete(r Range) Edit {
	return Edit{Range: r}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Range.IsEmpty() {
		return fmt.Sprintf("Insert(%s, %q)", e.Range.Start, e.Text)
	}
	if e.Text == "" {
		return fmt.Sprintf("Delete(%s)", e.Range)
	}
	return fmt.Sprintf("Replace(%s, %q)", e.Range, e.Text)
}

// IsNoOp returns true if this edit does nothing.
func (e Edit) IsNoOp() bool {
	return e.Range.IsEmpty() && e.Text == ""
}

// InsertedEnd returns the position just past the replacement text once
// the edit has been applied.
func (e Edit) InsertedEnd() Position {
	return advance(e.Range.Start, e.Text)
}

// advance returns the position reached by writing text at p.
func advance(p Position, text string) Position {
	n := strings.Count(text, "\n")
	if n == 0 {
		return Position{Line: p.Line, Ch: p.Ch + len(text)}
	}
	return Position{Line: p.Line + n, Ch: len(text) - strings.LastIndexByte(text, '\n') - 1}
}

// Bias decides where a position inside a replaced range ends up.
type Bias uint8

const (
	// BiasAfter moves positions inside a replaced range to the end of the
	// replacement text.
	BiasAfter Bias = iota
	// BiasBefore keeps positions inside a replaced range at its start.
	BiasBefore
)

// mapPosition maps a position through a single edit.
func (e Edit) mapPosition(p Position, bias Bias) Position {
	start, end := e.Range.Start, e.Range.End
	if p.Before(start) {
		return p
	}
	inserted := e.InsertedEnd()
	if p.After(end) {
		if p.Line == end.Line {
			return Position{Line: inserted.Line, Ch: inserted.Ch + p.Ch - end.Ch, Sticky: p.Sticky}
		}
		return Position{Line: p.Line + inserted.Line - end.Line, Ch: p.Ch, Sticky: p.Sticky}
	}
	if bias == BiasBefore && (p.Before(end) || start.Equal(end)) {
		return Position{Line: start.Line, Ch: start.Ch, Sticky: p.Sticky}
	}
	return Position{Line: inserted.Line, Ch: inserted.Ch, Sticky: p.Sticky}
}

// MapPosition maps a position expressed before a batch of edits to where it
// lands after the batch. The edits must be in pre-edit coordinates and
// sorted by start, as SortEdits returns them.
func MapPosition(p Position, edits []Edit, bias Bias) Position {
	// Later edits never move earlier ones, so walking back to front keeps
	// every edit's coordinates valid.
	for i := len(edits) - 1; i >= 0; i-- {
		p = edits[i].mapPosition(p, bias)
	}
	return p
}

// SortEdits returns a copy of edits ordered by start position. Edits that
// start at the same position keep their relative order.
func SortEdits(edits []Edit) []Edit {
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Range.Start.Before(sorted[j].Range.Start)
	})
	return sorted
}

// Change describes one applied batch of edits.
type Change struct {
	Edits    []Edit // The batch, sorted, in pre-edit coordinates
	Revision uint64 // The buffer revision after the batch
}

// ChangeListener is notified after every applied batch.
type ChangeListener func(Change)
