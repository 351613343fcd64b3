package selection

import (
	"fmt"

	"github.com/dshills/quill/internal/engine/buffer"
)

// Position is an alias for buffer.Position for convenience.
type Position = buffer.Position

// Range is an alias for buffer.Range for convenience.
type Range = buffer.Range

// Selection represents a range of selected text.
// Start never follows End. Reversed records that the selection was made
// head-first, so the head is Start and the anchor is End.
// When Start == End, this represents a cursor with no selection.
// Selection is an immutable value type.
type Selection struct {
	Start    Position
	End      Position
	Reversed bool
	Primary  bool
}

// New creates a selection from anchor to head.
func New(anchor, head Position) Selection {
	if head.Before(anchor) {
		return Selection{Start: head, End: anchor, Reversed: true}
	}
	return Selection{Start: anchor, End: head}
}

// NewCursor creates a selection representing just a cursor (no extent).
func NewCursor(p Position) Selection {
	return Selection{Start: p, End: p}
}

// FromRange creates a forward selection covering the given range.
func FromRange(r Range) Selection {
	return Selection{Start: r.Start, End: r.End}
}

// IsEmpty returns true if the selection has no extent (just a cursor).
func (s Selection) IsEmpty() bool {
	return s.Start.Equal(s.End)
}

// IsMultiLine returns true if the selection spans more than one line.
func (s Selection) IsMultiLine() bool {
	return s.Start.Line != s.End.Line
}

// Range returns the selection as a range.
func (s Selection) Range() Range {
	return Range{Start: s.Start, End: s.End}
}

// Head returns the position where typing occurs.
func (s Selection) Head() Position {
	if s.Reversed {
		return s.Start
	}
	return s.End
}

// Anchor returns the fixed end of the selection.
func (s Selection) Anchor() Position {
	if s.Reversed {
		return s.End
	}
	return s.Start
}

// WithPrimary returns a copy with the primary flag set to primary.
func (s Selection) WithPrimary(primary bool) Selection {
	s.Primary = primary
	return s
}

// CollapseToStart returns a cursor at the start of the selection.
func (s Selection) CollapseToStart() Selection {
	return Selection{Start: s.Start, End: s.Start, Primary: s.Primary}
}

// CollapseToEnd returns a cursor at the end of the selection.
func (s Selection) CollapseToEnd() Selection {
	return Selection{Start: s.End, End: s.End, Primary: s.Primary}
}

// Ordered returns the selection with Start <= End, swapping the endpoints
// and setting Reversed if they were out of order.
func (s Selection) Ordered() Selection {
	if s.End.Before(s.Start) {
		s.Start, s.End = s.End, s.Start
		s.Reversed = true
	}
	return s
}

// Contains returns true if p lies within [Start, End].
func (s Selection) Contains(p Position) bool {
	return !p.Before(s.Start) && !p.After(s.End)
}

// Touches returns true if the selections overlap or share an endpoint.
func (s Selection) Touches(other Selection) bool {
	return !other.Start.After(s.End) && !s.Start.After(other.End)
}

// Merge combines two selections into one spanning both.
// Flags are kept if either selection carries them.
func (s Selection) Merge(other Selection) Selection {
	return Selection{
		Start:    buffer.MinPos(s.Start, other.Start),
		End:      buffer.MaxPos(s.End, other.End),
		Reversed: s.Reversed || other.Reversed,
		Primary:  s.Primary || other.Primary,
	}
}

// Equals returns true if both selections have the same endpoints and flags.
func (s Selection) Equals(other Selection) bool {
	return s.Start.Equal(other.Start) && s.End.Equal(other.End) &&
		s.Reversed == other.Reversed && s.Primary == other.Primary
}

// String returns a human-readable representation of the selection.
func (s Selection) String() string {
	str := fmt.Sprintf("%s-%s", s.Start, s.End)
	if s.IsEmpty() {
		str = s.Start.String()
	}
	if s.Reversed {
		str += " reversed"
	}
	if s.Primary {
		str += " primary"
	}
	return str
}
