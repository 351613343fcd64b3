package selection

import (
	"sort"
	"strings"
)

// Normalize returns a valid selection set built from sels:
//
//  1. endpoints are ordered, setting Reversed when they were swapped
//  2. selections are sorted by start (ties: the longer one first)
//  3. a selection whose start is at or before the previous end is merged
//     into it; the merged selection keeps any Primary or Reversed flag
//  4. exactly one selection is primary; if none is flagged, the last one
//     (the one ending furthest into the document) becomes primary
//
// The input slice is not modified.
func Normalize(sels []Selection) []Selection {
	if len(sels) == 0 {
		return nil
	}

	out := make([]Selection, len(sels))
	for i, sel := range sels {
		out[i] = sel.Ordered()
	}

	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Start.Compare(out[j].Start); c != 0 {
			return c < 0
		}
		return out[i].End.After(out[j].End)
	})

	merged := out[:1]
	for _, sel := range out[1:] {
		last := &merged[len(merged)-1]
		if !sel.Start.After(last.End) {
			*last = last.Merge(sel)
		} else {
			merged = append(merged, sel)
		}
	}

	primary := -1
	for i := range merged {
		if merged[i].Primary {
			if primary >= 0 {
				merged[primary].Primary = false
			}
			primary = i
		}
	}
	if primary < 0 {
		merged[len(merged)-1].Primary = true
	}

	return merged
}

// IsNormalized reports whether sels already satisfies Normalize's output
// invariants.
func IsNormalized(sels []Selection) bool {
	if len(sels) == 0 {
		return false
	}
	primaries := 0
	for i, sel := range sels {
		if sel.End.Before(sel.Start) {
			return false
		}
		if i > 0 && !sel.Start.After(sels[i-1].End) {
			return false
		}
		if sel.Primary {
			primaries++
		}
	}
	return primaries == 1
}

// Set is an immutable, normalized collection of selections.
// The zero Set is empty and has no primary selection.
type Set struct {
	sels []Selection
}

// NewSet creates a normalized set from the given selections.
func NewSet(sels ...Selection) Set {
	return Set{sels: Normalize(sels)}
}

// NewSetAt creates a set holding a single cursor.
func NewSetAt(p Position) Set {
	return NewSet(NewCursor(p))
}

// Primary returns the primary selection.
func (s Set) Primary() Selection {
	for _, sel := range s.sels {
		if sel.Primary {
			return sel
		}
	}
	return Selection{}
}

// PrimaryIndex returns the index of the primary selection, or -1 for an
// empty set.
func (s Set) PrimaryIndex() int {
	for i, sel := range s.sels {
		if sel.Primary {
			return i
		}
	}
	return -1
}

// All returns a copy of the selections in document order.
func (s Set) All() []Selection {
	out := make([]Selection, len(s.sels))
	copy(out, s.sels)
	return out
}

// Len returns the number of selections.
func (s Set) Len() int {
	return len(s.sels)
}

// IsMulti returns true if there are multiple selections.
func (s Set) IsMulti() bool {
	return len(s.sels) > 1
}

// HasSelection returns true if any selection has an extent.
func (s Set) HasSelection() bool {
	for _, sel := range s.sels {
		if !sel.IsEmpty() {
			return true
		}
	}
	return false
}

// AnyMultiLine returns true if any selection spans several lines.
func (s Set) AnyMultiLine() bool {
	for _, sel := range s.sels {
		if sel.IsMultiLine() {
			return true
		}
	}
	return false
}

// Ranges returns the ranges of all selections in document order.
func (s Set) Ranges() []Range {
	out := make([]Range, len(s.sels))
	for i, sel := range s.sels {
		out[i] = sel.Range()
	}
	return out
}

// Map returns a new normalized set built from f applied to each selection.
func (s Set) Map(f func(Selection) Selection) Set {
	out := make([]Selection, len(s.sels))
	for i, sel := range s.sels {
		out[i] = f(sel)
	}
	return Set{sels: Normalize(out)}
}

// Equals returns true if two sets hold the same selections.
func (s Set) Equals(other Set) bool {
	if len(s.sels) != len(other.sels) {
		return false
	}
	for i, sel := range s.sels {
		if !sel.Equals(other.sels[i]) {
			return false
		}
	}
	return true
}

// String returns a human-readable representation of the set.
func (s Set) String() string {
	parts := make([]string, len(s.sels))
	for i, sel := range s.sels {
		parts[i] = sel.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
