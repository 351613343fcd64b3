package buffer

import "fmt"

// Sticky records which side of a position a cursor prefers when the
// position sits on a wrap or bidi boundary. It never affects ordering.
type Sticky uint8

const (
	// StickyNone is the default association.
	StickyNone Sticky = iota
	// StickyBefore associates with the character before the position.
	StickyBefore
	// StickyAfter associates with the character after the position.
	StickyAfter
)

// String returns the string representation of the sticky value.
func (s Sticky) String() string {
	switch s {
	case StickyBefore:
		return "before"
	case StickyAfter:
		return "after"
	default:
		return "none"
	}
}

// Position is a line and column location in the buffer.
// Both Line and Ch are 0-indexed; Ch is a byte offset within the line.
type Position struct {
	Line   int
	Ch     int
	Sticky Sticky
}

// Pos is shorthand for a Position without a sticky association.
func Pos(line, ch int) Position {
	return Position{Line: line, Ch: ch}
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("{%d,%d}", p.Line, p.Ch)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
// Sticky is ignored.
func (p Position) Compare(other Position) int {
	if p.Line < other.Line {
		return -1
	}
	if p.Line > other.Line {
		return 1
	}
	if p.Ch < other.Ch {
		return -1
	}
	if p.Ch > other.Ch {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// Equal returns true if p and other address the same location.
func (p Position) Equal(other Position) bool {
	return p.Compare(other) == 0
}

// MinPos returns the earlier of two positions.
func MinPos(a, b Position) Position {
	if b.Before(a) {
		return b
	}
	return a
}

// MaxPos returns the later of two positions.
func MaxPos(a, b Position) Position {
	if b.After(a) {
		return b
	}
	return a
}
