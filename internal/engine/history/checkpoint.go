package history

import (
	"fmt"
	"sort"
	"time"
)

// Checkpoint is a named position in the done stack.
type Checkpoint struct {
	Name    string
	Created time.Time

	// seq is the sequence number of the top done record, 0 if none.
	seq     uint64
	epoch   uint64
	dropped uint64

	selections []Selection
}

// CreateCheckpoint binds name to the current top of the done stack,
// replacing any earlier binding. The selections are restored when the
// checkpoint is.
func (h *History) CreateCheckpoint(name string, sels []Selection) Checkpoint {
	h.mu.Lock()
	defer h.mu.Unlock()

	cp := Checkpoint{
		Name:       name,
		Created:    time.Now(),
		epoch:      h.epoch,
		dropped:    h.dropped,
		selections: cloneSelections(sels),
	}
	if len(h.done) > 0 {
		cp.seq = h.done[len(h.done)-1].Seq
	}
	h.checkpoints[name] = cp
	return cp
}

// HasCheckpoint reports whether name is bound.
func (h *History) HasCheckpoint(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.checkpoints[name]
	return ok
}

// Checkpoints returns the bound names in sorted order.
func (h *History) Checkpoints() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	names := make([]string, 0, len(h.checkpoints))
	for name := range h.checkpoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RestoreCheckpoint undoes records until the state bound to name is back
// on top of the done stack, then restores the selections saved with it.
// The name is unbound whether or not the restore succeeds.
//
// Returns ErrUnknownCheckpoint if name is not bound and ErrStaleCheckpoint
// if the log was cleared since, or the bound record was undone, replaced or
// dropped. Neither error changes the document.
func (h *History) RestoreCheckpoint(name string, t Target) error {
	h.mu.Lock()
	cp, ok := h.checkpoints[name]
	if !ok {
		h.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownCheckpoint, name)
	}
	delete(h.checkpoints, name)

	if err := h.checkStaleLocked(cp); err != nil {
		h.mu.Unlock()
		return err
	}
	h.mu.Unlock()

	for {
		top := h.Top()
		if top == nil && cp.seq == 0 {
			break
		}
		if top != nil && top.Seq == cp.seq {
			break
		}
		if _, err := h.Undo(t); err != nil {
			return fmt.Errorf("restoring checkpoint %q: %w", name, err)
		}
	}

	t.RestoreSelections(cloneSelections(cp.selections))
	return nil
}

func (h *History) checkStaleLocked(cp Checkpoint) error {
	if cp.epoch != h.epoch {
		return fmt.Errorf("%w: %q predates a history reset", ErrStaleCheckpoint, cp.Name)
	}
	if cp.seq == 0 {
		if cp.dropped != h.dropped {
			return fmt.Errorf("%w: %q points at records no longer kept", ErrStaleCheckpoint, cp.Name)
		}
		return nil
	}
	if h.indexOfLocked(cp.seq) < 0 {
		return fmt.Errorf("%w: %q points at a record no longer on the undo stack", ErrStaleCheckpoint, cp.Name)
	}
	return nil
}
