// Package selection provides the multi-selection model of the editor.
//
// A Selection is an immutable value holding an ordered range (Start <= End)
// plus two flags: Reversed records that the head precedes the anchor, and
// Primary marks the selection that single-selection queries answer with.
// A cursor is simply a Selection whose Start equals its End.
//
// Normalize turns an arbitrary list of selections into a valid set: endpoints
// ordered, entries sorted by start, overlapping or touching entries merged,
// and exactly one primary. Set wraps a normalized list so that holders of a
// Set never observe an unnormalized state.
//
//	set := selection.NewSet(
//	    selection.New(buffer.Pos(0, 3), buffer.Pos(0, 6)),
//	    selection.New(buffer.Pos(0, 4), buffer.Pos(0, 1)),
//	)
//	// set.All() == [{0,1}-{0,6} reversed primary]
//
// ConvertToLineSelections expands selections to whole lines for
// line-oriented commands, keeping track of which originals each expanded
// range covers.
package selection
