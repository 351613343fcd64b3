package history

import (
	"sync"
)

// State reports the sizes of the two stacks.
type State struct {
	Done   int
	Undone int
}

// History manages undo/redo state for a document.
type History struct {
	mu sync.Mutex

	done   []*Record
	undone []*Record

	// seq is the last sequence number handed out.
	seq uint64
	// epoch changes whenever the log is cleared.
	epoch uint64
	// dropped counts records evicted by maxEntries.
	dropped uint64

	checkpoints map[string]Checkpoint

	// Configuration
	maxEntries int
}

// NewHistory creates a new history manager.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = 1000 // Default
	}
	return &History{
		maxEntries:  maxEntries,
		checkpoints: make(map[string]Checkpoint),
	}
}

// Push adds a record to the done stack, assigns its sequence number and
// clears the undone stack.
func (h *History) Push(rec *Record) *Record {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.seq++
	rec.Seq = h.seq
	h.done = append(h.done, rec)

	// Clear redo stack
	h.undone = nil

	// Enforce max entries
	if len(h.done) > h.maxEntries {
		excess := len(h.done) - h.maxEntries
		h.done = h.done[excess:]
		h.dropped += uint64(excess)
	}
	return rec
}

// Undo undoes the top record of the done stack.
// The lock is released while the target applies edits.
func (h *History) Undo(t Target) (*Record, error) {
	h.mu.Lock()
	if len(h.done) == 0 {
		h.mu.Unlock()
		return nil, ErrNothingToUndo
	}

	rec := h.done[len(h.done)-1]
	h.done = h.done[:len(h.done)-1]
	h.mu.Unlock()

	if _, err := t.ApplyEdits(rec.Inverse); err != nil {
		// Restore entry on failure
		h.mu.Lock()
		h.done = append(h.done, rec)
		h.mu.Unlock()
		return nil, err
	}
	t.RestoreSelections(cloneSelections(rec.Before))

	h.mu.Lock()
	h.undone = append(h.undone, rec)
	h.mu.Unlock()
	return rec, nil
}

// Redo reapplies the top record of the undone stack.
// The lock is released while the target applies edits.
func (h *History) Redo(t Target) (*Record, error) {
	h.mu.Lock()
	if len(h.undone) == 0 {
		h.mu.Unlock()
		return nil, ErrNothingToRedo
	}

	rec := h.undone[len(h.undone)-1]
	h.undone = h.undone[:len(h.undone)-1]
	h.mu.Unlock()

	if _, err := t.ApplyEdits(rec.Edits); err != nil {
		h.mu.Lock()
		h.undone = append(h.undone, rec)
		h.mu.Unlock()
		return nil, err
	}
	t.RestoreSelections(cloneSelections(rec.After))

	h.mu.Lock()
	h.done = append(h.done, rec)
	h.mu.Unlock()
	return rec, nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.done) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undone) > 0
}

// State returns the current stack sizes.
func (h *History) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return State{Done: len(h.done), Undone: len(h.undone)}
}

// Top returns the top record of the done stack, or nil.
func (h *History) Top() *Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.done) == 0 {
		return nil
	}
	return h.done[len(h.done)-1]
}

// Epoch returns the current epoch.
func (h *History) Epoch() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.epoch
}

// Clear empties both stacks and starts a new epoch. Checkpoints created
// before the call become stale.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.done = nil
	h.undone = nil
	h.dropped = 0
	h.epoch++
}

// SetMaxEntries changes the bound on the done stack. Excess records are
// dropped immediately, oldest first.
func (h *History) SetMaxEntries(n int) {
	if n <= 0 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = n
	if len(h.done) > n {
		excess := len(h.done) - n
		h.done = h.done[excess:]
		h.dropped += uint64(excess)
	}
}

// indexOfLocked returns the done-stack index of the record with seq, or -1.
func (h *History) indexOfLocked(seq uint64) int {
	for i := len(h.done) - 1; i >= 0; i-- {
		if h.done[i].Seq == seq {
			return i
		}
	}
	return -1
}
