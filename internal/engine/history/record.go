package history

import (
	"fmt"
	"time"

	"github.com/dshills/quill/internal/engine/buffer"
	"github.com/dshills/quill/internal/engine/selection"
)

// Edit is an alias for buffer.Edit for convenience.
type Edit = buffer.Edit

// Selection is an alias for selection.Selection for convenience.
type Selection = selection.Selection

// Record is one undoable batch.
// It captures all information needed to undo or redo the batch.
type Record struct {
	// Seq identifies the record. Assigned by Push; never reused.
	Seq uint64

	// Label names the command that produced the record.
	Label string

	// Edit data
	Edits   []Edit // Forward batch, in the coordinates before it ran
	Inverse []Edit // Batch restoring the old text, in the coordinates after it ran

	// Selection state for restore
	Before []Selection
	After  []Selection

	// Metadata
	Timestamp time.Time
}

// NewRecord creates a record for an applied batch.
func NewRecord(label string, edits, inverse []Edit, before, after []Selection) *Record {
	return &Record{
		Label:     label,
		Edits:     edits,
		Inverse:   inverse,
		Before:    cloneSelections(before),
		After:     cloneSelections(after),
		Timestamp: time.Now(),
	}
}

// String returns a human-readable representation of the record.
func (r *Record) String() string {
	return fmt.Sprintf("#%d %s (%d edits)", r.Seq, r.Label, len(r.Edits))
}

// Target is the document a record is undone or redone against.
type Target interface {
	// ApplyEdits applies a batch atomically.
	ApplyEdits(edits []Edit) ([]Edit, error)
	// RestoreSelections replaces the current selections.
	RestoreSelections(sels []Selection)
}

func cloneSelections(sels []Selection) []Selection {
	if sels == nil {
		return nil
	}
	out := make([]Selection, len(sels))
	copy(out, sels)
	return out
}
