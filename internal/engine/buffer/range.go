package buffer

import "fmt"

// Range is a span of the buffer from Start (inclusive) to End (exclusive).
type Range struct {
	Start Position
	End   Position
}

// NewRange creates a range between two positions in either order.
func NewRange(a, b Position) Range {
	if b.Before(a) {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start.Equal(r.End)
}

// IsValid returns true if Start <= End.
func (r Range) IsValid() bool {
	return !r.End.Before(r.Start)
}

// Contains returns true if p lies within [Start, End].
func (r Range) Contains(p Position) bool {
	return !p.Before(r.Start) && !p.After(r.End)
}

// Overlaps returns true if the ranges share at least one character.
func (r Range) Overlaps(other Range) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Union returns the smallest range that contains both ranges.
func (r Range) Union(other Range) Range {
	return Range{Start: MinPos(r.Start, other.Start), End: MaxPos(r.End, other.End)}
}
